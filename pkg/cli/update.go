package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/blang/semver"
	"github.com/rhysd/go-github-selfupdate/selfupdate"
	"github.com/rs/zerolog/log"
)

const updateRepo = "Fepozopo/instafilter"

var (
	detectLatest = selfupdate.DetectLatest
	updateTo     = selfupdate.UpdateTo
)

// checkForUpdates compares Version with the latest GitHub release and, after
// confirmation, replaces the running executable.
func (c *CLI) checkForUpdates() error {
	c.printf("Current version: %s\n", Version)

	latest, found, err := detectLatest(updateRepo)
	if err != nil {
		return fmt.Errorf("update check failed: %w", err)
	}
	if !found || latest == nil {
		c.printf("No releases found for %s.\n", updateRepo)
		return nil
	}
	c.printf("Latest version: %s\n", latest.Version)

	current, err := semver.ParseTolerant(Version)
	if err != nil {
		log.Warn().Err(err).Str("version", Version).Msg("could not parse current version")
	} else if !latest.Version.GT(current) {
		c.printf("You are already running the latest version: %s.\n", current)
		return nil
	}

	if latest.AssetURL == "" {
		c.printf("A new version (%s) is available but there is no downloadable asset.\n", latest.Version)
		return nil
	}

	answer, err := c.promptLine(fmt.Sprintf("A new version (%s) is available. Update now? (y/N): ", latest.Version))
	if err != nil {
		return fmt.Errorf("failed reading input: %w", err)
	}
	answer = strings.ToLower(answer)
	if answer != "y" && answer != "yes" {
		c.printf("Update cancelled.\n")
		return nil
	}

	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("could not locate executable: %w", err)
	}
	c.printf("Updating...\n")
	if err := updateTo(latest.AssetURL, exe); err != nil {
		return fmt.Errorf("update failed: %w", err)
	}
	c.printf("Updated to version %s. Restart instafilter to use it.\n", latest.Version)
	return nil
}
