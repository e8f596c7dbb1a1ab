package main

import (
	"flag"
	"fmt"
	"os"
	"os/exec"
	"runtime"

	"dataset-cutter/internal/appdirs"
	"dataset-cutter/log"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func handleCLIFlags() (bool, int) {
	flags := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	flags.SetOutput(os.Stderr)

	showVersion := flags.Bool("version", false, "print version information")
	showDiagnose := flags.Bool("diagnose", false, "print runtime diagnostics")

	if err := flags.Parse(os.Args[1:]); err != nil {
		return true, 2
	}

	if !*showVersion && !*showDiagnose {
		return false, 0
	}

	if *showVersion {
		printVersion()
	}

	if *showDiagnose {
		if *showVersion {
			fmt.Println()
		}
		printDiagnose()
	}

	return true, 0
}

func printVersion() {
	fmt.Printf("version: %s\ncommit: %s\ndate: %s\n", version, commit, date)
}

func printDiagnose() {
	fmt.Printf("runtime: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	fmt.Printf("version: %s\n", version)
	fmt.Printf("commit: %s\n", commit)
	fmt.Printf("date: %s\n", date)

	if wd, err := os.Getwd(); err == nil {
		fmt.Printf("working_dir: %s\n", wd)
	} else {
		fmt.Printf("working_dir: <error: %v>\n", err)
	}

	if exePath, err := os.Executable(); err == nil {
		fmt.Printf("executable: %s\n", exePath)
	} else {
		fmt.Printf("executable: <error: %v>\n", err)
	}

	if dirs, err := appdirs.Resolve(); err == nil {
		fmt.Printf("portable_mode: %v\n", dirs.Portable)
		printPath("config", dirs.ConfigFile)
		printPath("data", dirs.DataDir)
		printPath("videos", dirs.VideosDir)
		printPath("dataset", dirs.DatasetDir)
	} else {
		fmt.Printf("app_dirs: <error: %v>\n", err)
	}

	if logDir, err := log.ResolveLogDir(); err == nil {
		printPath("effective_log_dir", logDir)
	} else {
		fmt.Printf("path.effective_log_dir: <error: %v>\n", err)
	}

	for _, tool := range []string{"ffmpeg", "ffprobe"} {
		if toolPath, err := exec.LookPath(tool); err == nil {
			fmt.Printf("dependency.%s: found (%s)\n", tool, toolPath)
		} else {
			fmt.Printf("dependency.%s: missing (%v)\n", tool, err)
		}
	}
}

func printPath(name, value string) {
	_, err := os.Stat(value)
	if err == nil {
		fmt.Printf("path.%s: %s (exists)\n", name, value)
		return
	}
	if os.IsNotExist(err) {
		fmt.Printf("path.%s: %s (missing)\n", name, value)
		return
	}
	fmt.Printf("path.%s: %s (error=%v)\n", name, value, err)
}
