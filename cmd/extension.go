package cmd

import (
	"errors"
	"fmt"
	"log"
	"os"
	"os/exec"
	"strconv"
)

// Environment variables read by tov, and passed to its extensions.
const (
	EnvPresets  = "TOV_PRESETS"
	EnvCurrency = "TOV_CURRENCY"
	EnvVerbose  = "TOV_VERBOSE"
)

// RunExtension attempts to find and execute an external tov-<subcommand> binary.
// It returns (true, exitCode) if an extension was found and executed,
// and (false, 0) if no extension was found.
func RunExtension(subcommand string, args []string) (bool, int) {
	externalCmdName := "tov-" + subcommand

	lp, err := exec.LookPath(externalCmdName)
	if err != nil {
		if *Verbose {
			log.Printf("external command %q not found in PATH: %v", externalCmdName, err)
		}
		return false, 0
	}

	cmd := exec.Command(lp, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = ExtensionEnv()

	if err := cmd.Run(); err != nil {
		var exitError *exec.ExitError
		if errors.As(err, &exitError) {
			return true, exitError.ExitCode()
		}
		fmt.Fprintf(os.Stderr, "Error executing external command %q: %v\n", externalCmdName, err)
		return true, 1
	}
	return true, 0
}

// ExtensionEnv returns the environment of extensions: the current one plus
// the global flags.
func ExtensionEnv() []string {
	env := os.Environ()
	env = append(env, EnvPresets+"="+*presetsFile)
	env = append(env, EnvCurrency+"="+*currency)
	env = append(env, EnvVerbose+"="+strconv.FormatBool(*Verbose))
	return env
}
