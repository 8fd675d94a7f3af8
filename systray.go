package main

import (
	"fyne.io/systray"
	"github.com/atotto/clipboard"

	"github.com/dotside-studios/nfc-status-agent/buildinfo"
	"github.com/dotside-studios/nfc-status-agent/nfc"
)

// SystrayApp shows reader availability in the system tray.
type SystrayApp struct {
	agent *Agent

	mStatus  *systray.MenuItem
	mServer  *systray.MenuItem
	mCopyURL *systray.MenuItem
	mRefresh *systray.MenuItem
	mQuit    *systray.MenuItem
}

// NewSystrayApp creates a new systray application
func NewSystrayApp(agent *Agent) *SystrayApp {
	return &SystrayApp{agent: agent}
}

// Run starts the systray application. It blocks until Quit.
func (s *SystrayApp) Run() {
	systray.Run(s.onReady, s.onExit)
}

func (s *SystrayApp) onReady() {
	s.setupUI()
	s.autoStartAgent()
	go s.handleMenuEvents()
}

func (s *SystrayApp) onExit() {
	s.agent.Stop()
}

// setupUI initializes all menu items
func (s *SystrayApp) setupUI() {
	systray.SetIcon(iconData)
	systray.SetTooltip(buildinfo.DisplayName)

	s.mStatus = systray.AddMenuItem("Checking...", "NFC reader availability")
	s.mStatus.Disable()

	s.mRefresh = systray.AddMenuItem("Refresh", "Check for NFC readers again")

	systray.AddSeparator()

	s.mServer = systray.AddMenuItem("Server: Not running", "Status server URL")
	s.mServer.Disable()
	s.mCopyURL = systray.AddMenuItem("Copy Status URL", "Copy the status URL to the clipboard")
	s.mCopyURL.Disable()

	systray.AddSeparator()
	s.mQuit = systray.AddMenuItem("Quit", "Quit the application")
}

// autoStartAgent starts the status server and runs the first check
func (s *SystrayApp) autoStartAgent() {
	go func() {
		if err := s.agent.Start(); err == nil {
			s.mServer.SetTitle("Server: " + s.agent.StatusURL())
			s.mCopyURL.Enable()
		} else {
			s.mServer.SetTitle("Server: Failed to start")
		}
		s.refresh()
	}()
}

// handleMenuEvents processes all menu click events
func (s *SystrayApp) handleMenuEvents() {
	for {
		select {
		case <-s.mRefresh.ClickedCh:
			s.refresh()
		case <-s.mCopyURL.ClickedCh:
			if url := s.agent.StatusURL(); url != "" {
				if err := clipboard.WriteAll(url); err != nil {
					s.agent.Logger.WithError(err).Warn("[systray] Failed to copy to clipboard")
				} else {
					s.agent.Logger.Info("[systray] Copied status URL to clipboard")
				}
			}
		case <-s.mQuit.ClickedCh:
			systray.Quit()
			return
		}
	}
}

// refresh runs a check and updates the status item and icon
func (s *SystrayApp) refresh() {
	s.mStatus.SetTitle("Checking...")
	s.updateStatus(s.agent.Check())
}

func (s *SystrayApp) updateStatus(status nfc.Status) {
	s.mStatus.SetTitle(status.Message)
	if status.Available {
		systray.SetIcon(iconDataAvailable)
		systray.SetTooltip(buildinfo.DisplayName + ": " + status.Message)
	} else {
		systray.SetIcon(iconDataUnavailable)
		systray.SetTooltip(buildinfo.DisplayName + ": unavailable")
	}
}
