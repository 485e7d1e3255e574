package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dpo-labs/dpo/internal/config"
	"github.com/dpo-labs/dpo/internal/host"
	"github.com/dpo-labs/dpo/internal/manifest"
	"github.com/dpo-labs/dpo/internal/profile"
	"github.com/dpo-labs/dpo/internal/pyenv"
	"github.com/spf13/cobra"
)

var (
	doctorRequirements string
	doctorProfile      string
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Health check for the Python environment",
	Long: `Run diagnostic checks on the environment the launcher depends on:
the Python interpreter and its version, pip, the host library, the
requirements manifest, and the launch profile if one is present.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		healthy := runDoctorChecks(cmd.OutOrStdout())
		if !healthy {
			return fmt.Errorf("environment has problems; see the report above")
		}
		return nil
	},
}

func init() {
	doctorCmd.Flags().StringVarP(&doctorRequirements, "requirements", "r", DefaultRequirements, "Dependency manifest file")
	doctorCmd.Flags().StringVar(&doctorProfile, "profile", "", "Launch profile file (default: launch.yaml when present)")
	rootCmd.AddCommand(doctorCmd)
}

// runDoctorChecks prints the report and returns overall health. Warnings do
// not count as failures.
func runDoctorChecks(w io.Writer) bool {
	healthy := true
	ctx := context.Background()

	fmt.Fprintln(w, "Interpreter check:")
	interp, err := pyenv.Find(config.Get(config.KeyPython))
	if err != nil {
		fmt.Fprintf(w, "  [MISS] %v\n", err)
		healthy = false
	} else {
		fmt.Fprintf(w, "  [ OK ] %s found at %s\n", interp.Name, interp.Path)

		if v, verr := interp.Version(ctx); verr != nil {
			fmt.Fprintf(w, "  [FAIL] cannot determine interpreter version: %v\n", verr)
			healthy = false
		} else if ok, _ := interp.MeetsMinVersion(ctx, pyenv.MinVersion); !ok {
			fmt.Fprintf(w, "  [FAIL] %s is %s, need %s or newer\n", interp.Name, v, pyenv.MinVersion)
			healthy = false
		} else {
			fmt.Fprintf(w, "  [ OK ] version %s (minimum %s)\n", v, pyenv.MinVersion)
		}

		if interp.HasPip(ctx) {
			fmt.Fprintf(w, "  [ OK ] pip is available\n")
		} else {
			fmt.Fprintf(w, "  [FAIL] pip is not available — dependency installation cannot run\n")
			healthy = false
		}

		if interp.ImportCheck(ctx, host.Library) {
			fmt.Fprintf(w, "  [ OK ] %s is importable\n", host.Library)
		} else {
			fmt.Fprintf(w, "  [WARN] %s is not importable (launch will install it)\n", host.Library)
		}
	}

	fmt.Fprintln(w, "Manifest check:")
	if _, err := os.Stat(doctorRequirements); os.IsNotExist(err) {
		fmt.Fprintf(w, "  [MISS] %s does not exist\n", doctorRequirements)
		healthy = false
	} else if m, err := manifest.ParseFile(doctorRequirements); err != nil {
		fmt.Fprintf(w, "  [FAIL] %v\n", err)
		healthy = false
	} else {
		fmt.Fprintf(w, "  [ OK ] %s parses (%d requirements)\n", doctorRequirements, len(m.Requirements))
		if m.Contains(host.Library) {
			fmt.Fprintf(w, "  [ OK ] %s is listed\n", host.Library)
		} else {
			fmt.Fprintf(w, "  [WARN] %s is not listed — installation will not provide the host\n", host.Library)
		}
	}

	profilePath := doctorProfile
	if profilePath == "" {
		if _, err := os.Stat(profile.DefaultFileName); err == nil {
			profilePath = profile.DefaultFileName
		}
	}
	if profilePath != "" {
		fmt.Fprintln(w, "Profile check:")
		result, err := profile.ValidateFile(profilePath)
		switch {
		case err != nil:
			fmt.Fprintf(w, "  [FAIL] %v\n", err)
			healthy = false
		case !result.Valid:
			fmt.Fprintf(w, "  [FAIL] %s is invalid:\n%s\n", profilePath, result.Render())
			healthy = false
		default:
			fmt.Fprintf(w, "  [ OK ] %s is valid\n", profilePath)
		}
	}

	return healthy
}
