package task

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"tsugumi/book"
	"tsugumi/epub"
	"tsugumi/misc"
	"tsugumi/state"
)

// locateProject resolves the project description path from the command
// argument: explicit file, directory containing one, or a walk up from the
// current directory when nothing was given.
func locateProject(arg string) (string, error) {
	if arg == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", err
		}
		return book.FindProject(cwd)
	}
	fi, err := os.Stat(arg)
	if err != nil {
		return "", fmt.Errorf("unable to access %s: %w", arg, err)
	}
	if fi.IsDir() {
		name := filepath.Join(arg, book.ProjectFile)
		if _, err := os.Stat(name); err != nil {
			return "", fmt.Errorf("no %s in directory %s", book.ProjectFile, arg)
		}
		return name, nil
	}
	return arg, nil
}

// Build assembles the publication described by the project.
func Build(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)

	if cmd.Args().Len() > 2 {
		env.Log.Warn("Malformed command line, too many arguments", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	projectPath, err := locateProject(cmd.Args().Get(0))
	if err != nil {
		return err
	}
	env.Log.Debug("Using project description", zap.String("project", projectPath))
	env.Rpt.Store("project/"+book.ProjectFile, projectPath)

	bk, err := book.Load(projectPath)
	if err != nil {
		return err
	}

	workDir, err := os.MkdirTemp("", misc.GetAppName()+"-")
	if err != nil {
		return fmt.Errorf("unable to create working directory: %w", err)
	}
	defer os.RemoveAll(workDir)

	g := epub.NewGenerator(env.Log)
	g.DefaultStyle = env.DefaultStyle
	g.WorkDir = workDir
	g.FixZip = env.Cfg.Document.FixZip
	g.Verify = env.Cfg.Document.Verify || env.Verify
	g.Overwrite = env.Overwrite

	if p := env.Cfg.Document.StylesheetPath; p != "" {
		data, err := os.ReadFile(p)
		if err != nil {
			return fmt.Errorf("unable to read replacement stylesheet: %w", err)
		}
		g.DefaultStyle = data
	}

	outputPath := buildOutputPath(bk, cmd.Args().Get(1), env)
	if err := g.Generate(ctx, bk, filepath.Dir(projectPath), outputPath); err != nil {
		return err
	}
	env.Rpt.Store("output/"+filepath.Base(outputPath), outputPath)
	return nil
}
