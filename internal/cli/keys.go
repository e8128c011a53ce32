package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/ehunter/skycast/internal/keyring"
)

// keyAliases maps the short names the CLI accepts to keyring entries.
var keyAliases = map[string]string{
	"openweather": keyring.KeyOpenWeather,
	"gemini":      keyring.KeyGemini,
	"openai":      keyring.KeyOpenAI,
	"github":      keyring.KeyGitHub,
	"maps":        keyring.KeyMaps,
	"database":    keyring.KeyDatabase,
}

func resolveKeyName(name string) (string, error) {
	if full, ok := keyAliases[strings.ToLower(name)]; ok {
		return full, nil
	}
	known := make([]string, 0, len(keyAliases))
	for alias := range keyAliases {
		known = append(known, alias)
	}
	sort.Strings(known)
	return "", fmt.Errorf("unknown key %q, expected one of: %s", name, strings.Join(known, ", "))
}

type KeysSetCmd struct {
	Name  string `arg:"" help:"Which secret to store (openweather|gemini|openai|github|maps|database)."`
	Value string `arg:"" optional:"" help:"Secret value. Prompted for when omitted, which keeps it out of shell history."`
}

func (c *KeysSetCmd) Run(ctx *Context) error {
	name, err := resolveKeyName(c.Name)
	if err != nil {
		return err
	}

	value := c.Value
	if value == "" {
		fmt.Printf("Value for %s: ", name)
		reader := bufio.NewReader(os.Stdin)
		line, err := reader.ReadString('\n')
		if err != nil {
			return err
		}
		value = strings.TrimSpace(line)
	}
	if value == "" {
		return fmt.Errorf("refusing to store an empty secret")
	}

	if err := keyring.Set(name, value); err != nil {
		return fmt.Errorf("failed to store %s: %w", name, err)
	}
	fmt.Printf("✓ Stored %s in the OS keyring.\n", name)
	return nil
}

type KeysGetCmd struct {
	Name string `arg:"" help:"Which secret to read."`
}

func (c *KeysGetCmd) Run(ctx *Context) error {
	name, err := resolveKeyName(c.Name)
	if err != nil {
		return err
	}

	value, err := keyring.Get(name)
	if errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("no %s stored; set it with 'skycast keys set %s'", name, strings.ToLower(c.Name))
	}
	if err != nil {
		return err
	}
	fmt.Println(value)
	return nil
}

type KeysDeleteCmd struct {
	Name string `arg:"" help:"Which secret to remove."`
}

func (c *KeysDeleteCmd) Run(ctx *Context) error {
	name, err := resolveKeyName(c.Name)
	if err != nil {
		return err
	}

	if err := keyring.Delete(name); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			fmt.Printf("No %s was stored.\n", name)
			return nil
		}
		return fmt.Errorf("failed to delete %s: %w", name, err)
	}
	fmt.Printf("✓ Removed %s from the OS keyring.\n", name)
	return nil
}

type KeysListCmd struct{}

func (c *KeysListCmd) Run(ctx *Context) error {
	if !keyring.IsAvailable() {
		return fmt.Errorf("OS keyring is not available on this system")
	}

	aliases := make([]string, 0, len(keyAliases))
	for alias := range keyAliases {
		aliases = append(aliases, alias)
	}
	sort.Strings(aliases)

	for _, alias := range aliases {
		name := keyAliases[alias]
		if _, err := keyring.Get(name); err == nil {
			fmt.Printf("  ✓ %-12s %s\n", alias, name)
		} else {
			fmt.Printf("  ○ %-12s %s\n", alias, name)
		}
	}
	return nil
}
