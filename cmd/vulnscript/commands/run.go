package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"vulnscript/internal/builtin"
	"vulnscript/internal/builtin/cryptography"
	"vulnscript/internal/interpreter"
	"vulnscript/internal/lexer"
	"vulnscript/internal/loader"
	"vulnscript/internal/parser"
	"vulnscript/internal/storage"
)

var (
	dbType string
	dbDSN  string

	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	dimStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	headStyle = lipgloss.NewStyle().Bold(true)
)

var runCmd = &cobra.Command{
	Use:   "run <script>",
	Short: "Run a VulnScript script and print per-statement outcomes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runScript(args[0])
	},
}

func init() {
	runCmd.Flags().StringVar(&dbType, "db-type", "", "persist KB items to a database (sqlite, postgres, mysql, sqlserver)")
	runCmd.Flags().StringVar(&dbDSN, "db", "", "database DSN for --db-type")
	rootCmd.AddCommand(runCmd)
}

func runScript(path string) error {
	name := strings.TrimSuffix(filepath.Base(path), loader.Extension)
	ld := loader.NewDirLoader(filepath.Dir(path))
	source, err := ld.Load(name)
	if err != nil {
		return err
	}

	scanner := lexer.NewScanner(source)
	tokens := scanner.ScanTokens()
	if len(scanner.Errors) > 0 {
		return fmt.Errorf("scan errors: %s", strings.Join(scanner.Errors, "; "))
	}
	p := parser.NewParser(tokens)
	stmts := p.Parse()
	if len(p.Errors) > 0 {
		for _, perr := range p.Errors {
			fmt.Fprintln(os.Stderr, errStyle.Render(perr.Error()))
		}
		return fmt.Errorf("%d parse errors", len(p.Errors))
	}

	scanKey := uuid.NewString()
	var sink storage.Sink
	if dbType != "" {
		dbSink, err := storage.NewDBSink(dbType, dbDSN, scanKey)
		if err != nil {
			return err
		}
		sink = dbSink
	} else {
		sink = storage.NewMemSink()
	}
	defer sink.Close()

	interp := interpreter.New(scanKey, sink, interpreter.NewRegister())
	builtin.RegisterDataFunctions(interp)
	builtin.RegisterKBFunctions(interp)
	cryptography.RegisterCryptoFunctions(interp)
	cryptography.RegisterHashFunctions(interp)

	fmt.Println(headStyle.Render(fmt.Sprintf("%s (scan %s)", filepath.Base(path), scanKey)))

	failures := 0
	stream := interp.Stream(stmts)
	for n := 1; ; n++ {
		outcome, ok := stream.Next()
		if !ok {
			break
		}
		if outcome.Err != nil {
			failures++
			fmt.Printf("%s %s\n", dimStyle.Render(fmt.Sprintf("%3d", n)), errStyle.Render(outcome.Err.Error()))
			continue
		}
		fmt.Printf("%s %s\n", dimStyle.Render(fmt.Sprintf("%3d", n)), okStyle.Render(interpreter.ToString(outcome.Value)))
	}
	if failures > 0 {
		return fmt.Errorf("%d statements failed", failures)
	}
	return nil
}
