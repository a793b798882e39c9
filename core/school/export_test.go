package school

import "time"

// MockNow replaces the clock until the returned func is called.
func MockNow(f func() time.Time) (restore func()) {
	nowFunc = f
	return func() { nowFunc = time.Now }
}

func MockReceipts(f func() string) (restore func()) {
	orig := newReceiptFunc
	newReceiptFunc = f
	return func() { newReceiptFunc = orig }
}
