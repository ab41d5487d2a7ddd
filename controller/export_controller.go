package controller

import (
	"cafeapi/logger"
	"cafeapi/model"
	"cafeapi/utils"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

const (
	exportSheet    = "Cafes"
	exportFilename = "cafes.xlsx"
	xlsxMIME       = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var exportHeader = []interface{}{
	"id", "name", "map_url", "img_url", "location", "seats",
	"has_toilet", "has_wifi", "has_sockets", "can_take_calls", "coffee_price",
}

// ExportCafes answers GET /export with every cafe as an XLSX workbook, in
// the same order as GET /all.
func (cc *CafeController) ExportCafes(c *gin.Context) {
	cafes, err := cc.store.ListAll(c.Request.Context())
	cc.record("list_all", err)
	if err != nil {
		cc.respondStoreError(c, err)
		return
	}

	f, err := BuildWorkbook(cafes)
	if err != nil {
		cc.respondStoreError(c, err)
		return
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		cc.respondStoreError(c, fmt.Errorf("write workbook: %w", err))
		return
	}

	cc.log.Debug(c.Request.Context(), "cafes exported",
		logger.Int("rows", len(cafes)),
		logger.String("request_id", utils.RequestID(c)))
	c.Header("Content-Disposition", "attachment; filename="+exportFilename)
	c.Data(http.StatusOK, xlsxMIME, buf.Bytes())
}

// BuildWorkbook lays cafes out one per row under a header row.
func BuildWorkbook(cafes []model.Cafe) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	if err := f.SetSheetRow(exportSheet, "A1", &exportHeader); err != nil {
		f.Close()
		return nil, fmt.Errorf("write header: %w", err)
	}

	for i, cafe := range cafes {
		price := ""
		if cafe.CoffeePrice != nil {
			price = *cafe.CoffeePrice
		}
		row := []interface{}{
			cafe.ID, cafe.Name, cafe.MapURL, cafe.ImgURL, cafe.Location, cafe.Seats,
			cafe.HasToilet, cafe.HasWifi, cafe.HasSockets, cafe.CanTakeCalls, price,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			f.Close()
			return nil, err
		}
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			f.Close()
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}
	return f, nil
}
