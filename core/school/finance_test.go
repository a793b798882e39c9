package school_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/msms/core"
	"github.com/trezcool/msms/core/school"
	"github.com/trezcool/msms/tests"
)

func TestRecordStore_RecordPayment(t *testing.T) {
	defer school.MockReceipts(func() string { return "rcpt-1" })()
	store, _ := testutil.NewStore(t, true)

	tests := []struct {
		name       string
		in         school.NewPayment
		wantErr    func(error) bool
		wantMethod string
	}{
		{name: "zero amount", in: school.NewPayment{StudentID: 1, Amount: 0}, wantErr: core.IsValidation},
		{name: "negative amount", in: school.NewPayment{StudentID: 1, Amount: -5}, wantErr: core.IsValidation},
		{name: "infinite amount", in: school.NewPayment{StudentID: 1, Amount: math.Inf(1)}, wantErr: core.IsValidation},
		{name: "NaN amount", in: school.NewPayment{StudentID: 1, Amount: math.NaN()}, wantErr: core.IsValidation},
		{name: "unknown student", in: school.NewPayment{StudentID: 9, Amount: 5}, wantErr: core.IsNotFound},
		{name: "blank method", in: school.NewPayment{StudentID: 1, Amount: 25.5, Method: "  "}, wantMethod: "Unspecified"},
		{name: "with method", in: school.NewPayment{StudentID: 1, Amount: 30, Method: "Card"}, wantMethod: "Card"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := len(store.Snapshot().FinanceLog)
			p, err := store.RecordPayment(tt.in)
			if tt.wantErr != nil {
				assert.True(t, tt.wantErr(err), "got %v", err)
				assert.Len(t, store.Snapshot().FinanceLog, before)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantMethod, p.Method)
			assert.Equal(t, "rcpt-1", p.Receipt)
			assert.Len(t, store.Snapshot().FinanceLog, before+1)
		})
	}
}

func TestRecordStore_PaymentHistory(t *testing.T) {
	store, _ := testutil.NewStore(t, true)

	base := time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC)
	for i, amount := range []float64{10, 20, 30} {
		restore := school.MockNow(func() time.Time { return base.Add(time.Duration(i) * time.Hour) })
		_, err := store.RecordPayment(school.NewPayment{StudentID: 1, Amount: amount})
		restore()
		require.NoError(t, err)
	}
	// same second as the last one
	restore := school.MockNow(func() time.Time { return base.Add(2 * time.Hour) })
	_, err := store.RecordPayment(school.NewPayment{StudentID: 1, Amount: 40})
	restore()
	require.NoError(t, err)
	_, err = store.RecordPayment(school.NewPayment{StudentID: 2, Amount: 99})
	require.NoError(t, err)

	amounts := make([]float64, 0)
	for _, p := range store.PaymentHistory(1) {
		amounts = append(amounts, p.Amount)
	}
	assert.Equal(t, []float64{40, 30, 20, 10}, amounts)
	assert.Empty(t, store.PaymentHistory(3))
	assert.NotNil(t, store.PaymentHistory(3))
}
