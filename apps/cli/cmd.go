package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/trezcool/msms/apps/di"
	"github.com/trezcool/msms/core"
	"github.com/trezcool/msms/core/school"
	"github.com/trezcool/msms/storage/jsonfile"
)

var (
	isTerminalFunc = isTerminal // mockable

	errNeedsJSONStorage = errors.New("backups need json storage")
)

type commandLine struct {
	conf   *core.Config
	in     io.Reader
	out    io.Writer
	logOut io.Writer

	// set up on first use, unless provided
	store     *school.RecordStore
	container *di.Container

	dataFile string
	memory   bool
}

func (cli *commandLine) run(args []string) error {
	root := cli.rootCmd()
	root.SetArgs(args[1:])
	root.SetIn(cli.in)
	root.SetOut(cli.out)
	root.SetErr(cli.out)
	return root.Execute()
}

func (cli *commandLine) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "msms",
		Short: "Music school records: students, teachers, courses, attendance and payments",
		Long: `Music school records: students, teachers, courses, attendance and payments.

Run without a command to open the interactive menu.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: func(*cobra.Command, []string) error { return cli.open() },
		RunE:              func(*cobra.Command, []string) error { return cli.menu() },
	}
	root.PersistentFlags().StringVar(&cli.dataFile, "data", "", "data file to use instead of the configured one")
	root.PersistentFlags().BoolVar(&cli.memory, "memory", false, "keep records in memory only")

	root.AddCommand(
		&cobra.Command{
			Use:   "menu",
			Short: "Open the interactive menu",
			Args:  cobra.NoArgs,
			RunE:  func(*cobra.Command, []string) error { return cli.menu() },
		},
		&cobra.Command{
			Use:   "export <payments|attendance> [path]",
			Short: "Export a report as CSV (or XLSX when path ends in .xlsx)",
			Args:  cobra.RangeArgs(1, 2),
			RunE: func(_ *cobra.Command, args []string) error {
				path := ""
				if len(args) > 1 {
					path = args[1]
				}
				return cli.export(args[0], path)
			},
		},
		&cobra.Command{
			Use:   "backup",
			Short: "Copy the data file into the backup directory",
			Args:  cobra.NoArgs,
			RunE:  func(*cobra.Command, []string) error { return cli.backup() },
		},
		&cobra.Command{
			Use:   "reset-demo",
			Short: "Replace every record with the demo data",
			Args:  cobra.NoArgs,
			RunE:  func(*cobra.Command, []string) error { return cli.resetDemo() },
		},
		&cobra.Command{
			Use:   "roster <day>",
			Short: "Print the lessons held on a day",
			Args:  cobra.ExactArgs(1),
			RunE: func(_ *cobra.Command, args []string) error {
				printRoster(cli.out, args[0], cli.store.RosterForDay(args[0]))
				return nil
			},
		},
	)
	return root
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// open applies the command-line overrides and sets up the store.
func (cli *commandLine) open() error {
	if cli.store != nil {
		return nil
	}
	if cli.dataFile != "" {
		cli.conf.DataFile = cli.dataFile
		cli.conf.Storage = core.StorageJSON
	}
	if cli.memory {
		cli.conf.Storage = core.StorageMemory
	}
	logOut := cli.logOut
	if logOut == nil {
		logOut = io.Discard
	}
	c, err := di.NewContainer(cli.conf, logOut, "MSMS : ")
	if err != nil {
		return err
	}
	cli.container = c
	cli.store = c.Store
	return nil
}

func (cli *commandLine) close() {
	if cli.container != nil {
		_ = cli.container.Close()
	}
}

func (cli *commandLine) export(kind, path string) error {
	if path == "" {
		path = filepath.Join(cli.conf.ReportDir, strings.ToLower(core.CleanString(kind))+"_report.csv")
	}
	if err := cli.store.ExportReport(kind, path); err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "Report written to %s\n", path)
	return nil
}

func (cli *commandLine) backup() error {
	if cli.conf.Storage != core.StorageJSON {
		return errNeedsJSONStorage
	}
	dst, err := jsonfile.Backup(cli.conf.DataFile, cli.conf.BackupDir)
	if err != nil {
		return err
	}
	if dst == "" {
		fmt.Fprintln(cli.out, "Nothing to back up yet.")
		return nil
	}
	fmt.Fprintf(cli.out, "Backup written to %s\n", dst)
	return nil
}

func (cli *commandLine) resetDemo() error {
	if err := cli.store.ResetDemoData(); err != nil {
		return err
	}
	fmt.Fprintln(cli.out, "Demo data restored.")
	return nil
}
