package benchmark_test

import (
	"context"
	"io"
	"testing"

	"github.com/spf13/cobra"
	"github.com/urfave/cli/v2"
	cliv3 "github.com/urfave/cli/v3"

	"github.com/dzonerzy/go-capo/capo"
)

// Benchmark simple CLI with basic flags
// All implementations execute a command with flags for fair comparison

func newCapoApp(b *testing.B) *capo.App {
	b.Helper()
	app := capo.New("bench", "benchmark app").DisableHelp()
	app.IO().WithOut(io.Discard).WithErr(io.Discard).NoColor()
	return app
}

func mustCommand(b *testing.B, app *capo.App, def capo.CommandDefinition) {
	b.Helper()
	if err := app.Command(def, func(_ *capo.Context) error { return nil }); err != nil {
		b.Fatalf("Command: %v", err)
	}
}

func BenchmarkSimpleCLI_Capo(b *testing.B) {
	app := newCapoApp(b)
	mustCommand(b, app, capo.CommandDefinition{
		Signature:   capo.SignatureDefinition{Command: []string{"run"}},
		Description: "Run benchmark",
		Options: []capo.OptionDefinition{
			{Name: "port", Description: "Server port", Types: []string{"number"}, Default: 8080},
			{Name: "verbose", Description: "Verbose output", Types: []string{"boolean"}},
		},
	})

	args := []string{"run", "--port", "9000", "--verbose"}
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = app.RunWithArgs(context.Background(), args)
	}
}

func BenchmarkSimpleCLI_Cobra(b *testing.B) {
	args := []string{"run", "--port", "9000", "--verbose"}
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		rootCmd := &cobra.Command{Use: "bench"}
		runCmd := &cobra.Command{
			Use: "run",
			Run: func(_ *cobra.Command, _ []string) {},
		}
		runCmd.Flags().IntP("port", "p", 8080, "Server port")
		runCmd.Flags().BoolP("verbose", "v", false, "Verbose output")
		rootCmd.AddCommand(runCmd)
		rootCmd.SetArgs(args)
		_ = rootCmd.Execute()
	}
}

func BenchmarkSimpleCLI_Urfave(b *testing.B) {
	args := []string{"bench", "run", "--port", "9000", "--verbose"}
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		app := &cli.App{
			Name: "bench",
			Commands: []*cli.Command{
				{
					Name: "run",
					Flags: []cli.Flag{
						&cli.IntFlag{Name: "port", Value: 8080, Usage: "Server port"},
						&cli.BoolFlag{Name: "verbose", Usage: "Verbose output"},
					},
					Action: func(_ *cli.Context) error { return nil },
				},
			},
		}
		_ = app.Run(args)
	}
}

func BenchmarkSimpleCLI_UrfaveV3(b *testing.B) {
	args := []string{"bench", "run", "--port", "9000", "--verbose"}
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		cmd := &cliv3.Command{
			Name: "bench",
			Commands: []*cliv3.Command{
				{
					Name: "run",
					Flags: []cliv3.Flag{
						&cliv3.IntFlag{Name: "port", Value: 8080, Usage: "Server port"},
						&cliv3.BoolFlag{Name: "verbose", Usage: "Verbose output"},
					},
					Action: func(_ context.Context, _ *cliv3.Command) error { return nil },
				},
			},
		}
		_ = cmd.Run(context.Background(), args)
	}
}

// Benchmark with subcommands
// capo has no global options, so the flag belongs to the command but may
// appear before it.

func BenchmarkSubcommands_Capo(b *testing.B) {
	app := newCapoApp(b)
	mustCommand(b, app, capo.CommandDefinition{
		Signature:   capo.SignatureDefinition{Command: []string{"serve"}},
		Description: "Start server",
		Options: []capo.OptionDefinition{
			{Name: "global", Description: "Global flag", Types: []string{"boolean"}},
			{Name: "port", Description: "Server port", Types: []string{"number"}, Default: 8080},
			{Name: "host", Description: "Server host", Types: []string{"string"}, Default: "localhost"},
		},
	})

	args := []string{"--global", "serve", "--port", "9000", "--host", "0.0.0.0"}
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = app.RunWithArgs(context.Background(), args)
	}
}

func BenchmarkSubcommands_Cobra(b *testing.B) {
	args := []string{"--global", "serve", "--port", "9000", "--host", "0.0.0.0"}
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		rootCmd := &cobra.Command{Use: "bench"}
		rootCmd.PersistentFlags().Bool("global", false, "Global flag")

		serveCmd := &cobra.Command{
			Use: "serve",
			Run: func(_ *cobra.Command, _ []string) {},
		}
		serveCmd.Flags().IntP("port", "p", 8080, "Server port")
		serveCmd.Flags().String("host", "localhost", "Server host")
		rootCmd.AddCommand(serveCmd)

		rootCmd.SetArgs(args)
		_ = rootCmd.Execute()
	}
}

func BenchmarkSubcommands_Urfave(b *testing.B) {
	args := []string{"bench", "--global", "serve", "--port", "9000", "--host", "0.0.0.0"}
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		app := &cli.App{
			Name: "bench",
			Flags: []cli.Flag{
				&cli.BoolFlag{Name: "global", Usage: "Global flag"},
			},
			Commands: []*cli.Command{
				{
					Name: "serve",
					Flags: []cli.Flag{
						&cli.IntFlag{Name: "port", Value: 8080, Usage: "Server port"},
						&cli.StringFlag{Name: "host", Value: "localhost", Usage: "Server host"},
					},
					Action: func(_ *cli.Context) error { return nil },
				},
			},
		}
		_ = app.Run(args)
	}
}

func BenchmarkSubcommands_UrfaveV3(b *testing.B) {
	args := []string{"bench", "--global", "serve", "--port", "9000", "--host", "0.0.0.0"}
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		cmd := &cliv3.Command{
			Name: "bench",
			Flags: []cliv3.Flag{
				&cliv3.BoolFlag{Name: "global", Usage: "Global flag"},
			},
			Commands: []*cliv3.Command{
				{
					Name: "serve",
					Flags: []cliv3.Flag{
						&cliv3.IntFlag{Name: "port", Value: 8080, Usage: "Server port"},
						&cliv3.StringFlag{Name: "host", Value: "localhost", Usage: "Server host"},
					},
					Action: func(_ context.Context, _ *cliv3.Command) error { return nil },
				},
			},
		}
		_ = cmd.Run(context.Background(), args)
	}
}

// Benchmark with many flags

var manyFlagsArgs = []string{
	"run",
	"--flag1", "a", "--flag2", "b", "--flag3", "c", "--flag4", "d", "--flag5", "e",
	"--port", "9000", "--verbose", "--debug", "--quiet", "--force",
}

func BenchmarkManyFlags_Capo(b *testing.B) {
	app := newCapoApp(b)
	options := make([]capo.OptionDefinition, 0, 10)
	for _, name := range []string{"flag1", "flag2", "flag3", "flag4", "flag5"} {
		options = append(options, capo.OptionDefinition{Name: name, Types: []string{"string"}, Default: "value"})
	}
	options = append(options, capo.OptionDefinition{Name: "port", Types: []string{"number"}, Default: 8080})
	for _, name := range []string{"verbose", "debug", "quiet", "force"} {
		options = append(options, capo.OptionDefinition{Name: name, Types: []string{"boolean"}})
	}
	mustCommand(b, app, capo.CommandDefinition{
		Signature: capo.SignatureDefinition{Command: []string{"run"}},
		Options:   options,
	})

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = app.RunWithArgs(context.Background(), manyFlagsArgs)
	}
}

func BenchmarkManyFlags_Cobra(b *testing.B) {
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		rootCmd := &cobra.Command{Use: "bench"}
		runCmd := &cobra.Command{
			Use: "run",
			Run: func(_ *cobra.Command, _ []string) {},
		}
		for _, name := range []string{"flag1", "flag2", "flag3", "flag4", "flag5"} {
			runCmd.Flags().String(name, "value", name)
		}
		runCmd.Flags().Int("port", 8080, "Port")
		for _, name := range []string{"verbose", "debug", "quiet", "force"} {
			runCmd.Flags().Bool(name, false, name)
		}
		rootCmd.AddCommand(runCmd)
		rootCmd.SetArgs(manyFlagsArgs)
		_ = rootCmd.Execute()
	}
}

func BenchmarkManyFlags_Urfave(b *testing.B) {
	args := append([]string{"bench"}, manyFlagsArgs...)
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		app := &cli.App{
			Name: "bench",
			Commands: []*cli.Command{
				{
					Name: "run",
					Flags: []cli.Flag{
						&cli.StringFlag{Name: "flag1", Value: "value"},
						&cli.StringFlag{Name: "flag2", Value: "value"},
						&cli.StringFlag{Name: "flag3", Value: "value"},
						&cli.StringFlag{Name: "flag4", Value: "value"},
						&cli.StringFlag{Name: "flag5", Value: "value"},
						&cli.IntFlag{Name: "port", Value: 8080},
						&cli.BoolFlag{Name: "verbose"},
						&cli.BoolFlag{Name: "debug"},
						&cli.BoolFlag{Name: "quiet"},
						&cli.BoolFlag{Name: "force"},
					},
					Action: func(_ *cli.Context) error { return nil },
				},
			},
		}
		_ = app.Run(args)
	}
}

func BenchmarkManyFlags_UrfaveV3(b *testing.B) {
	args := append([]string{"bench"}, manyFlagsArgs...)
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		cmd := &cliv3.Command{
			Name: "bench",
			Commands: []*cliv3.Command{
				{
					Name: "run",
					Flags: []cliv3.Flag{
						&cliv3.StringFlag{Name: "flag1", Value: "value"},
						&cliv3.StringFlag{Name: "flag2", Value: "value"},
						&cliv3.StringFlag{Name: "flag3", Value: "value"},
						&cliv3.StringFlag{Name: "flag4", Value: "value"},
						&cliv3.StringFlag{Name: "flag5", Value: "value"},
						&cliv3.IntFlag{Name: "port", Value: 8080},
						&cliv3.BoolFlag{Name: "verbose"},
						&cliv3.BoolFlag{Name: "debug"},
						&cliv3.BoolFlag{Name: "quiet"},
						&cliv3.BoolFlag{Name: "force"},
					},
					Action: func(_ context.Context, _ *cliv3.Command) error { return nil },
				},
			},
		}
		_ = cmd.Run(context.Background(), args)
	}
}

// Benchmark nested command routing

func BenchmarkNestedCommands_Capo(b *testing.B) {
	app := newCapoApp(b)
	for _, words := range [][]string{{"server", "start"}, {"server", "stop"}, {"client", "connect"}} {
		mustCommand(b, app, capo.CommandDefinition{Signature: capo.SignatureDefinition{Command: words}})
	}

	args := []string{"server", "start"}
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = app.RunWithArgs(context.Background(), args)
	}
}

func BenchmarkNestedCommands_Cobra(b *testing.B) {
	args := []string{"server", "start"}
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		rootCmd := &cobra.Command{Use: "bench"}
		serverCmd := &cobra.Command{Use: "server"}
		serverCmd.AddCommand(
			&cobra.Command{Use: "start", Run: func(_ *cobra.Command, _ []string) {}},
			&cobra.Command{Use: "stop", Run: func(_ *cobra.Command, _ []string) {}},
		)
		clientCmd := &cobra.Command{Use: "client"}
		clientCmd.AddCommand(&cobra.Command{Use: "connect", Run: func(_ *cobra.Command, _ []string) {}})
		rootCmd.AddCommand(serverCmd, clientCmd)
		rootCmd.SetArgs(args)
		_ = rootCmd.Execute()
	}
}

func BenchmarkNestedCommands_Urfave(b *testing.B) {
	args := []string{"bench", "server", "start"}
	action := func(_ *cli.Context) error { return nil }
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		app := &cli.App{
			Name: "bench",
			Commands: []*cli.Command{
				{
					Name: "server",
					Subcommands: []*cli.Command{
						{Name: "start", Action: action},
						{Name: "stop", Action: action},
					},
				},
				{
					Name:        "client",
					Subcommands: []*cli.Command{{Name: "connect", Action: action}},
				},
			},
		}
		_ = app.Run(args)
	}
}

func BenchmarkNestedCommands_UrfaveV3(b *testing.B) {
	args := []string{"bench", "server", "start"}
	action := func(_ context.Context, _ *cliv3.Command) error { return nil }
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		cmd := &cliv3.Command{
			Name: "bench",
			Commands: []*cliv3.Command{
				{
					Name: "server",
					Commands: []*cliv3.Command{
						{Name: "start", Action: action},
						{Name: "stop", Action: action},
					},
				},
				{
					Name:     "client",
					Commands: []*cliv3.Command{{Name: "connect", Action: action}},
				},
			},
		}
		_ = cmd.Run(context.Background(), args)
	}
}
