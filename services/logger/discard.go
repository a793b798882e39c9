package logsvc

import "github.com/trezcool/msms/core"

// Discard drops every log line.
type Discard struct{}

var _ core.Logger = Discard{}

func (Discard) Debug(string, ...interface{}) {}
func (Discard) Info(string, ...interface{})  {}
func (Discard) Warn(string, ...interface{})  {}
func (Discard) Error(string, ...interface{}) {}
func (Discard) Fatal(string, ...interface{}) {}
