package controllers

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
	"github.com/tealeg/xlsx"

	"github.com/aromanza/gateway/apiclient"
	"github.com/aromanza/gateway/models"
	"github.com/aromanza/gateway/utils"
)

// AdminOrderController manages orders from the dashboard
type AdminOrderController struct {
	Orders *apiclient.Orders
	Clock  Clock
}

// OrderSummary aggregates an order listing
type OrderSummary struct {
	Orders    int             `json:"pedidos"`
	Items     int             `json:"items"`
	Revenue   decimal.Decimal `json:"ingresos"`
	Average   decimal.Decimal `json:"promedio"`
	ByStatus  map[string]int  `json:"porEstado"`
	Customers int             `json:"clientes"`
}

// Summarize totals orders. Cancelled orders are counted but earn nothing.
func Summarize(orders []models.Order) OrderSummary {
	s := OrderSummary{
		Revenue:  decimal.Zero,
		Average:  decimal.Zero,
		ByStatus: map[string]int{},
	}
	customers := map[string]bool{}
	earning := 0
	for _, o := range orders {
		s.Orders++
		s.ByStatus[o.Status]++
		customers[o.Customer] = true
		for _, d := range o.Details {
			s.Items += d.Quantity
		}
		if o.Status == models.OrderStatusCancelled {
			continue
		}
		s.Revenue = s.Revenue.Add(o.Total)
		earning++
	}
	s.Customers = len(customers)
	if earning > 0 {
		s.Average = s.Revenue.Div(decimal.NewFromInt(int64(earning))).Round(2)
	}
	return s
}

// ListOrders returns every order, newest first, with a summary
func (oc *AdminOrderController) ListOrders(c *gin.Context) {
	utils.LogInfo("Admin ListOrders called")
	orders, ok := oc.fetch(c)
	if !ok {
		return
	}

	if status := strings.ToUpper(c.Query("estado")); status != "" {
		filtered := orders[:0]
		for _, o := range orders {
			if o.Status == status {
				filtered = append(filtered, o)
			}
		}
		orders = filtered
	}

	utils.Success(c, "Pedidos obtenidos", gin.H{
		"pedidos": orders,
		"resumen": Summarize(orders),
	})
}

// UpdateOrderStatus moves an order to another state
func (oc *AdminOrderController) UpdateOrderStatus(c *gin.Context) {
	id, ok := paramID(c, "id", utils.ErrInvalidID)
	if !ok {
		return
	}

	var req models.OrderStatusUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, utils.ErrInvalidPayload, err.Error())
		return
	}
	req.Status = strings.ToUpper(strings.TrimSpace(req.Status))
	if !models.ValidOrderStatus(req.Status) {
		utils.LogError("Invalid order status %q for order %d", req.Status, id)
		utils.BadRequest(c, "Estado de pedido inválido", gin.H{"permitidos": models.OrderStatuses})
		return
	}

	order, err := oc.Orders.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		utils.LogError("Failed to update order %d to %s: %v", id, req.Status, err)
		upstreamError(c, "No se pudo actualizar el pedido", err)
		return
	}
	utils.LogInfo("Order %d moved to %s", id, req.Status)
	utils.Success(c, "Estado actualizado", order)
}

// ExportOrders downloads the order list as xlsx or pdf. period narrows it to
// the last day, week or month.
func (oc *AdminOrderController) ExportOrders(c *gin.Context) {
	format := strings.ToLower(c.DefaultQuery("format", "xlsx"))
	period := strings.ToLower(c.DefaultQuery("period", "all"))
	utils.LogInfo("ExportOrders called: format=%s period=%s", format, period)

	if format != "xlsx" && format != "pdf" {
		utils.BadRequest(c, "Formato inválido", "El formato debe ser xlsx o pdf")
		return
	}
	from, ok := periodStart(period, oc.Clock.now())
	if !ok {
		utils.BadRequest(c, "Período inválido", "El período debe ser day, week, month o all")
		return
	}

	orders, ok := oc.fetch(c)
	if !ok {
		return
	}
	if !from.IsZero() {
		filtered := orders[:0]
		for _, o := range orders {
			if !o.Date.IsSet() || !o.Date.Time.Before(from) {
				filtered = append(filtered, o)
			}
		}
		orders = filtered
	}
	summary := Summarize(orders)
	filename := fmt.Sprintf("pedidos_%s_%s", period, oc.Clock.now().Format("20060102"))

	if format == "pdf" {
		oc.writePDF(c, orders, summary, period, filename)
		return
	}
	oc.writeXLSX(c, orders, summary, period, filename)
}

func (oc *AdminOrderController) fetch(c *gin.Context) ([]models.Order, bool) {
	orders, err := oc.Orders.List(c.Request.Context())
	if err != nil {
		utils.LogError("Failed to fetch orders: %v", err)
		upstreamError(c, "No se pudieron cargar los pedidos", err)
		return nil, false
	}
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].Date.Time.After(orders[j].Date.Time)
	})
	return orders, true
}

func periodStart(period string, now time.Time) (time.Time, bool) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	switch period {
	case "all":
		return time.Time{}, true
	case "day":
		return today, true
	case "week":
		return today.AddDate(0, 0, -6), true
	case "month":
		return today.AddDate(0, 0, -30), true
	}
	return time.Time{}, false
}

func formatOrderDate(d models.Date) string {
	if !d.IsSet() {
		return "-"
	}
	return d.Time.Format("2006-01-02 15:04")
}

func (oc *AdminOrderController) writeXLSX(c *gin.Context, orders []models.Order, summary OrderSummary, period, filename string) {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Pedidos")
	if err != nil {
		utils.LogError("Failed to create Excel sheet: %v", err)
		utils.InternalServerError(c, "No se pudo generar el archivo", nil)
		return
	}

	bold := xlsx.NewStyle()
	font := xlsx.DefaultFont()
	font.Bold = true
	bold.Font = *font

	title := sheet.AddRow()
	title.AddCell().SetString(strings.ToUpper(utils.AppName) + " - Pedidos")
	title.Cells[0].SetStyle(bold)
	sheet.AddRow().AddCell().SetString("Período: " + period)
	sheet.AddRow()

	headerRow := sheet.AddRow()
	for _, h := range []string{"Pedido", "Cliente", "Fecha", "Items", "Total", "Estado"} {
		cell := headerRow.AddCell()
		cell.SetString(h)
		cell.SetStyle(bold)
	}

	for _, o := range orders {
		items := 0
		for _, d := range o.Details {
			items += d.Quantity
		}
		total, _ := o.Total.Float64()
		row := sheet.AddRow()
		row.AddCell().SetInt64(o.ID)
		row.AddCell().SetString(o.Customer)
		row.AddCell().SetString(formatOrderDate(o.Date))
		row.AddCell().SetInt(items)
		row.AddCell().SetFloat(total)
		row.AddCell().SetString(o.Status)
	}

	sheet.AddRow()
	summaryRow := sheet.AddRow()
	summaryRow.AddCell().SetString("Resumen")
	summaryRow.Cells[0].SetStyle(bold)
	for _, kv := range summaryLines(summary) {
		row := sheet.AddRow()
		row.AddCell().SetString(kv[0])
		row.AddCell().SetString(kv[1])
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.xlsx", filename))
	if err := file.Write(c.Writer); err != nil {
		utils.LogError("Failed to write Excel file: %v", err)
		return
	}
	utils.LogInfo("Exported %d orders to xlsx", len(orders))
}

func (oc *AdminOrderController) writePDF(c *gin.Context, orders []models.Order, summary OrderSummary, period, filename string) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(0, 12, strings.ToUpper(utils.AppName)+" - Pedidos")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 11)
	pdf.Cell(0, 8, tr("Período: "+period+" | Generado: "+oc.Clock.now().Format("2006-01-02 15:04")))
	pdf.Ln(12)

	headers := []string{"Pedido", "Cliente", "Fecha", "Items", "Total", "Estado"}
	widths := []float64{25, 80, 45, 25, 40, 45}
	pdf.SetFont("Arial", "B", 11)
	pdf.SetFillColor(200, 200, 200)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 9, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	for i, o := range orders {
		fill := i%2 == 1
		pdf.SetFillColor(245, 240, 250)
		items := 0
		for _, d := range o.Details {
			items += d.Quantity
		}
		pdf.CellFormat(widths[0], 8, fmt.Sprintf("%d", o.ID), "1", 0, "C", fill, 0, "")
		pdf.CellFormat(widths[1], 8, tr(o.Customer), "1", 0, "L", fill, 0, "")
		pdf.CellFormat(widths[2], 8, formatOrderDate(o.Date), "1", 0, "C", fill, 0, "")
		pdf.CellFormat(widths[3], 8, fmt.Sprintf("%d", items), "1", 0, "C", fill, 0, "")
		pdf.CellFormat(widths[4], 8, o.Total.StringFixed(2), "1", 0, "R", fill, 0, "")
		pdf.CellFormat(widths[5], 8, o.Status, "1", 0, "C", fill, 0, "")
		pdf.Ln(-1)
	}

	pdf.Ln(8)
	pdf.SetFont("Arial", "B", 12)
	pdf.SetFillColor(230, 220, 245)
	pdf.CellFormat(90, 10, "Resumen", "1", 0, "C", true, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 11)
	for _, kv := range summaryLines(summary) {
		pdf.CellFormat(50, 8, tr(kv[0]), "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 8, kv[1], "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.pdf", filename))
	if err := pdf.Output(c.Writer); err != nil {
		utils.LogError("Failed to write PDF file: %v", err)
		return
	}
	utils.LogInfo("Exported %d orders to pdf", len(orders))
}

func summaryLines(s OrderSummary) [][2]string {
	lines := [][2]string{
		{"Pedidos", fmt.Sprintf("%d", s.Orders)},
		{"Items vendidos", fmt.Sprintf("%d", s.Items)},
		{"Clientes", fmt.Sprintf("%d", s.Customers)},
		{"Ingresos", s.Revenue.StringFixed(2)},
		{"Ticket promedio", s.Average.StringFixed(2)},
	}
	for _, st := range models.OrderStatuses {
		if n := s.ByStatus[st]; n > 0 {
			lines = append(lines, [2]string{st, fmt.Sprintf("%d", n)})
		}
	}
	return lines
}
