package utils

import "github.com/gin-gonic/gin"

// Truthy treats any non-empty value as true, so "on", "1", "yes" and even
// "false" all count. Absent and empty fields are false.
func Truthy(v string) bool {
	return v != ""
}

// PostFormFlag reads a checkbox-style form field with Truthy semantics.
func PostFormFlag(c *gin.Context, key string) bool {
	return Truthy(c.PostForm(key))
}

// OptionalPostForm returns nil when the field was not submitted at all.
func OptionalPostForm(c *gin.Context, key string) *string {
	v, ok := c.GetPostForm(key)
	if !ok {
		return nil
	}
	return &v
}

// OptionalQuery returns nil when the query parameter is absent.
func OptionalQuery(c *gin.Context, key string) *string {
	v, ok := c.GetQuery(key)
	if !ok {
		return nil
	}
	return &v
}
