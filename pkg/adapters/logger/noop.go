package logger

import "github.com/user/gifatlas/pkg/ports"

// Discard drops every message, whatever its level or component. It backs
// --quiet: the per-file status lines do not go through a Logger and keep
// reaching stdout.
var Discard ports.Logger = discard{}

type discard struct{}

func (discard) Debug(string, ...interface{}) {}
func (discard) Info(string, ...interface{})  {}
func (discard) Warn(string, ...interface{})  {}
func (discard) Error(string, ...interface{}) {}

func (d discard) WithComponent(string) ports.Logger { return d }
