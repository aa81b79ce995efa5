package ui

import (
	"skycast/internal/domain"
)

// fetchSucceededMsg carries a snapshot for request seq
type fetchSucceededMsg struct {
	seq      uint64
	location string
	snapshot domain.WeatherSnapshot
}

// fetchFailedMsg carries the failure for request seq
type fetchFailedMsg struct {
	seq      uint64
	location string
	err      error
}

// helpPagerMsg contains the result of a help pager command
type helpPagerMsg struct {
	err error
}

// pauseRenderingMsg signals to pause Bubble Tea rendering
type pauseRenderingMsg struct{}

// resumeRenderingMsg signals to resume Bubble Tea rendering
type resumeRenderingMsg struct{}
