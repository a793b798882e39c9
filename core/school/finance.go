package school

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

var newReceiptFunc = func() string { return uuid.New().String() } // mockable

// RecordPayment appends a payment made by an existing Student.
// A blank method is recorded as "Unspecified".
func (s *RecordStore) RecordPayment(np NewPayment) (PaymentRecord, error) {
	if err := np.Validate(); err != nil {
		return PaymentRecord{}, err
	}
	p := PaymentRecord{
		StudentID: np.StudentID,
		Amount:    np.Amount,
		Method:    np.Method,
		Timestamp: nowFunc().UTC().Truncate(time.Second),
		Receipt:   newReceiptFunc(),
	}
	err := s.commit("record payment", func(doc *Document) error {
		if doc.student(np.StudentID) == nil {
			return ErrStudentNotFound
		}
		doc.FinanceLog = append(doc.FinanceLog, p)
		return nil
	})
	if err != nil {
		s.log.Warn("payment refused", err, map[string]interface{}{"student_id": np.StudentID, "amount": np.Amount})
		return PaymentRecord{}, err
	}
	s.log.Info("payment recorded", map[string]interface{}{"student_id": p.StudentID, "amount": p.Amount, "receipt": p.Receipt})
	return p, nil
}

// PaymentHistory returns a Student's payments, most recent first.
func (s *RecordStore) PaymentHistory(studentID int) []PaymentRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	history := make([]PaymentRecord, 0)
	for _, p := range s.doc.FinanceLog {
		if p.StudentID == studentID {
			history = append(history, p)
		}
	}
	// stable: same-second payments stay newest first by log position
	for i, j := 0, len(history)-1; i < j; i, j = i+1, j-1 {
		history[i], history[j] = history[j], history[i]
	}
	sort.SliceStable(history, func(i, j int) bool { return history[i].Timestamp.After(history[j].Timestamp) })
	return history
}
