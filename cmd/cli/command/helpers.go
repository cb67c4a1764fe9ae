package command

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"librarium/internal/gateway"
)

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return id, nil
}

// confirmPrompt asks the user for an explicit yes before a destructive
// action fires. --yes answers it affirmatively without prompting.
func confirmPrompt(question string, assumeYes bool) bool {
	if assumeYes {
		return true
	}
	fmt.Printf("%s [y/N]: ", question)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

// promptPassword reads a password without echoing it.
func promptPassword() (string, error) {
	fmt.Print("Password: ")
	data, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// optString returns the flag value only when the user actually set it, so
// updates can distinguish "clear this field" from "leave it alone".
func optString(cmd *cobra.Command, name string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	value, _ := cmd.Flags().GetString(name)
	return &value
}

func optInt64(cmd *cobra.Command, name string) *int64 {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	value, _ := cmd.Flags().GetInt64(name)
	return &value
}

func optDate(cmd *cobra.Command, name string) (*gateway.Date, error) {
	if !cmd.Flags().Changed(name) {
		return nil, nil
	}
	value, _ := cmd.Flags().GetString(name)
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, fmt.Errorf("invalid --%s %q, expected YYYY-MM-DD", name, value)
	}
	date := gateway.Date{Time: parsed}
	return &date, nil
}

func strOr(value *string, fallback string) string {
	if value == nil || *value == "" {
		return fallback
	}
	return *value
}

func dateOr(value *gateway.Date, fallback string) string {
	if value == nil || value.IsZero() {
		return fallback
	}
	return value.String()
}
