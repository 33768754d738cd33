package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"syscall"

	"github.com/spf13/cobra"
)

func DevCmd() *cobra.Command {
	var (
		port   string
		driver string
	)

	cmd := &cobra.Command{
		Use:   "dev",
		Short: "Run the server under air with hot reload",
		RunE: func(cmd *cobra.Command, args []string) error {
			airPath, err := exec.LookPath("air")
			if err != nil {
				fmt.Println("air is not installed:")
				fmt.Println("  go install github.com/air-verse/air@latest")
				return err
			}

			env := append(os.Environ(),
				"APP_ENV=development",
				"PORT="+port,
				"DB_DRIVER="+driver,
			)
			return syscall.Exec(airPath, airArgs(), env)
		},
	}

	cmd.Flags().StringVar(&port, "port", "8090", "listen port")
	cmd.Flags().StringVar(&driver, "driver", "sqlite", "storage driver: sqlite, pgx or mongo")
	return cmd
}

// airArgs configures air from flags so no .air.toml is needed.
func airArgs() []string {
	return []string{
		"air",
		"-c", "/dev/null",
		"-root", ".",
		"-build.cmd", "go build -o ./tmp/server ./cmd/server",
		"-build.bin", "./tmp/server",
		"-build.include_ext", "go,sql",
		"-build.exclude_dir", "bin,tmp,data,_examples",
		"-build.exclude_regex", "_test.go$",
		"-build.send_interrupt", "true",
		"-build.kill_delay", "500ms",
	}
}
