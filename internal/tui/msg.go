package tui

import (
	"github.com/runoshun/blockary/internal/domain"
	"github.com/runoshun/blockary/internal/usecase"
)

// Msg is the sealed interface for all TUI messages.
//
// go-sumtype:decl Msg
type Msg interface {
	sealed()
}

// MsgDayLoaded is sent when the timeline of a day is loaded.
type MsgDayLoaded struct {
	Out *usecase.ShowDayOutput
	Day domain.Date
}

func (MsgDayLoaded) sealed() {}

// MsgError is sent when loading a day fails.
type MsgError struct {
	Err error
	Day domain.Date
}

func (MsgError) sealed() {}
