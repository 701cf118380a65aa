package schema

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

var (
	scriptsDir string
	outputPath string
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Schema tools",
	}

	cmd.AddCommand(newExportCommand())

	return cmd
}

func newExportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the full SQL schema",
		Long:  `Concatenate the versioned up-migrations into a single SQL file, for provisioning the server backend outside the migration tooling.`,
		RunE:  runExport,
	}

	cmd.Flags().StringVar(&scriptsDir, "scripts", "./internal/infrastructure/migration/scripts", "Migration scripts directory")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file (default: stdout)")

	return cmd
}

func runExport(cmd *cobra.Command, args []string) error {
	entries, err := os.ReadDir(scriptsDir)
	if err != nil {
		return fmt.Errorf("failed to read scripts directory %s: %w", scriptsDir, err)
	}

	var upScripts []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".up.sql") {
			upScripts = append(upScripts, entry.Name())
		}
	}
	if len(upScripts) == 0 {
		return fmt.Errorf("no up-migrations found in %s", scriptsDir)
	}
	sort.Strings(upScripts)

	var b strings.Builder
	b.WriteString("-- derbydesk schema\n")
	b.WriteString(fmt.Sprintf("-- generated from %d migration(s)\n\n", len(upScripts)))

	for _, name := range upScripts {
		content, err := os.ReadFile(filepath.Join(scriptsDir, name))
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", name, err)
		}
		b.WriteString(fmt.Sprintf("-- %s\n", name))
		b.Write(content)
		if !strings.HasSuffix(string(content), "\n") {
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if outputPath == "" {
		fmt.Print(b.String())
		return nil
	}

	if err := os.WriteFile(outputPath, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", outputPath, err)
	}
	fmt.Printf("schema written to %s\n", outputPath)
	return nil
}
