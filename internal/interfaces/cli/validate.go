package cli

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/dicomops/dcmon-cli/internal/core/launch"
	"github.com/dicomops/dcmon-cli/internal/infrastructure/settings"
)

// newValidateCommand creates the validate subcommand
func newValidateCommand() *cobra.Command {
	var settingsFlag string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate the settings file and watch directories",
		Long: `Validate loads the settings file, checks every route (watch directory
exists, study description non-empty, endpoint URL well-formed), and prints
the resulting route table.

This command will:
- Check settings file validity
- Verify each watch directory exists
- Report the active routes`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(settingsFlag)
		},
	}

	cmd.Flags().StringVar(&settingsFlag, "settings", "", "Path to the settings JSON file")

	return cmd
}

// runValidate handles the validation process
func runValidate(settingsFlag string) error {
	fmt.Println("🔍 dcmon settings validation")
	fmt.Println("")

	installDir, err := launch.ResolveOwnDirectory()
	if err != nil {
		return err
	}
	paths := settings.ResolvePaths(settingsFlag, "", installDir)

	fmt.Printf("Checking settings file %s... ", paths.SettingsPath)
	table, err := settings.Load(paths.SettingsPath)
	if err != nil {
		fmt.Println("❌ Failed")
		return fmt.Errorf("settings invalid: %w", err)
	}
	fmt.Println("✅ Valid")

	fmt.Print("Checking watch directories... ")
	dirErrs := settings.CheckRouteDirs(table)
	if len(dirErrs) > 0 {
		fmt.Println("❌ Failed")
		for _, dirErr := range dirErrs {
			fmt.Printf("  - %v\n", dirErr)
		}
		return fmt.Errorf("%d watch directory problem(s)", len(dirErrs))
	}
	fmt.Println("✅ All present")

	fmt.Println("")
	out := tablewriter.NewWriter(os.Stdout)
	out.Header("Watch Directory", "Study Description", "API Endpoint")
	for _, r := range table.Routes() {
		out.Append([]string{r.WatchDir(), r.Description().Raw(), r.Endpoint()})
	}
	out.Render()

	fmt.Printf("\n%d route(s) configured.\n", table.Len())
	return nil
}
