package main

import "cafeapi/cmd"

func main() {
	cmd.Execute()
}
