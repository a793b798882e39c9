package echoweb

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/msms/core"
	"github.com/trezcool/msms/core/school"
)

const exportStampLayout = "20060102_150405"

type (
	paymentForm struct {
		StudentID int     `form:"student_id"`
		Amount    float64 `form:"amount"`
		Method    string  `form:"method"`
	}

	exportForm struct {
		Kind   string `form:"kind"`
		Format string `form:"format"` // csv | xlsx
	}

	paymentsData struct {
		StudentID int
		Students  []school.Student
		History   []school.PaymentRecord
	}
)

func registerPaymentPages(e *echo.Echo, h *handlers) {
	g := e.Group("/payments")
	g.GET("", h.payments)
	g.POST("", h.recordPayment)
	g.POST("/export", h.exportReport)
}

// paymentsPage shows the payment history of studentID, or of the first student when 0.
func (h *handlers) paymentsPage(ctx echo.Context, code int, fl *flash, studentID int) error {
	data := paymentsData{StudentID: studentID, Students: h.store.Students()}
	if data.StudentID == 0 && len(data.Students) > 0 {
		data.StudentID = data.Students[0].ID
	}
	data.History = h.store.PaymentHistory(data.StudentID)
	return h.render(ctx, code, "payments", "Payments", fl, data)
}

func (h *handlers) payments(ctx echo.Context) error {
	id, _ := strconv.Atoi(ctx.QueryParam("student_id"))
	return h.paymentsPage(ctx, http.StatusOK, nil, id)
}

func (h *handlers) recordPayment(ctx echo.Context) error {
	var form paymentForm
	if err := ctx.Bind(&form); err != nil {
		code, fl := h.outcome(ctx, err, "")
		return h.paymentsPage(ctx, code, fl, 0)
	}
	p, err := h.store.RecordPayment(school.NewPayment{StudentID: form.StudentID, Amount: form.Amount, Method: form.Method})
	code, fl := h.outcome(ctx, err, "Recorded %.2f from student #%d (receipt %s).", p.Amount, p.StudentID, p.Receipt)
	return h.paymentsPage(ctx, code, fl, form.StudentID)
}

// exportReport writes the report into the report directory and sends it as a download.
func (h *handlers) exportReport(ctx echo.Context) error {
	var form exportForm
	if err := ctx.Bind(&form); err != nil {
		code, fl := h.outcome(ctx, err, "")
		return h.paymentsPage(ctx, code, fl, 0)
	}
	ext := ".csv"
	if strings.EqualFold(core.CleanString(form.Format), "xlsx") {
		ext = ".xlsx"
	}
	kind := core.CleanString(form.Kind, true /* lower */)
	name := fmt.Sprintf("%s_report_%s%s", kind, nowFunc().UTC().Format(exportStampLayout), ext)

	if err := h.store.ExportReport(kind, filepath.Join(h.reportDir, name)); err != nil {
		code, fl := h.outcome(ctx, err, "")
		return h.paymentsPage(ctx, code, fl, 0)
	}
	return ctx.Attachment(filepath.Join(h.reportDir, name), name)
}
