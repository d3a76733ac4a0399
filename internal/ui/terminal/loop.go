package terminal

import (
	"log"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"
)

// postMsg carries work onto the Bubble Tea update goroutine.
type postMsg func()

// ProgramLoop posts work to a running Bubble Tea program.
type ProgramLoop struct {
	program atomic.Pointer[tea.Program]
}

// Bind sets the program that receives posted work.
func (loop *ProgramLoop) Bind(program *tea.Program) {
	loop.program.Store(program)
}

// Post implements refresh.Loop. Work posted before Bind is dropped.
func (loop *ProgramLoop) Post(fn func()) {
	program := loop.program.Load()
	if program == nil {
		log.Printf("terminal loop not bound, dropping update")
		return
	}
	program.Send(postMsg(fn))
}
