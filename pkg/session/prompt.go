package session

import (
	"fmt"
	"os"

	"github.com/Azure/subscription-copilot/pkg/logger"
)

// PromptText renders the interactive prompt for this session. The
// working directory is read at display time, not cached.
func (s *Session) PromptText() string {
	wd, err := os.Getwd()
	if err != nil {
		wd = ""
	}
	return fmt.Sprintf(`PS [Azure:\%s] %s> `, s.active, wd)
}

// InstallPrompt hands the current prompt text to the installer. The
// prompt is cosmetic: installation failures are logged at debug level
// and never reach the caller.
func (s *Session) InstallPrompt() {
	if s.installer == nil {
		return
	}
	if err := s.installer.Install(s.PromptText()); err != nil {
		logger.Debugf("prompt install failed: %v", err)
	}
}
