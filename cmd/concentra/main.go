// Package main is the entry point for the Concentra CLI.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/concentra-dev/concentra/internal/config"
	"github.com/concentra-dev/concentra/internal/speech"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:     "concentra",
		Short:   "Concentra, a voice-driven study and focus timer",
		Version: version,
		RunE: func(cmd *cobra.Command, args []string) error {
			return executeShell()
		},
	}

	root.AddCommand(
		runCmd(),
		onceCmd(),
		sayCmd(),
		listenCmd(),
		initCmd(),
	)

	return root
}

func runCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Launch the terminal shell",
		RunE: func(cmd *cobra.Command, args []string) error {
			return executeShell()
		},
	}
}

func onceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "once",
		Short: "Run one assistant session without the shell",
		RunE: func(cmd *cobra.Command, args []string) error {
			return executeOnce()
		},
	}
}

func sayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "say <text>",
		Short: "Speak text aloud (synthesis/playback check)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			ctx, cancel := signalContext()
			defer cancel()
			return newSpeaker(cfg).Speak(ctx, strings.Join(args, " "))
		},
	}
}

func listenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "listen",
		Short: "Capture one utterance and print the transcript (microphone check)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			ctx, cancel := signalContext()
			defer cancel()

			fmt.Println("Listening...")
			text, err := newListener(cfg).Listen(ctx)
			switch {
			case errors.Is(err, speech.ErrTimeout):
				fmt.Println("No speech detected.")
				return nil
			case errors.Is(err, speech.ErrUnintelligible):
				fmt.Println("Could not understand audio.")
				return nil
			case err != nil:
				return err
			}
			fmt.Printf("You said: %s\n", text)
			return nil
		},
	}
}

func initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create concentra.toml in the current directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("get working directory: %w", err)
			}
			path, err := config.InitFile(dir)
			if err != nil {
				return err
			}
			fmt.Printf("Created %s\n", path)
			return nil
		},
	}
}

// signalContext returns a context that is cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigs
		cancel()
	}()
	return ctx, cancel
}
