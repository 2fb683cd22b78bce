package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"ScoreIngest/internal/config"
	"ScoreIngest/internal/database"
	"ScoreIngest/internal/model"
	"ScoreIngest/internal/repository"
	"ScoreIngest/internal/service"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

// services 命令行共用的服务实例
type services struct {
	imports     *service.ImportService
	corrections *service.CorrectionService
	matches     *service.MatchService
	logger      *logrus.Logger
}

func main() {
	cliApp := &cli.App{
		Name:  "ingestctl",
		Usage: "match record import and bulk correction",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Value: "./config", Usage: "directory containing config.yaml"},
			&cli.StringFlag{Name: "variant", Aliases: []string{"v"}, Value: string(model.VariantHalfs), Usage: "halfs or cyber"},
		},
		Commands: []*cli.Command{
			previewCommand(),
			importCommand(),
			normalizeDatesCommand(),
			replaceCommand(),
			mergeCommand(),
			tournamentsCommand(),
			statsCommand(),
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func setup(c *cli.Context) (*services, model.Variant, error) {
	variant, ok := model.ParseVariant(c.String("variant"))
	if !ok {
		return nil, "", fmt.Errorf("unknown variant %q", c.String("variant"))
	}
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return nil, "", err
	}
	logger := cfg.Log.NewLogger()
	logger.SetOutput(os.Stderr)

	db, err := database.Open(cfg.Database, logger)
	if err != nil {
		return nil, "", err
	}
	if err := database.Migrate(db); err != nil {
		return nil, "", err
	}
	stores := repository.NewMatchStores(db)
	return &services{
		imports:     service.NewImportService(stores, repository.NewBatchRepository(db), cfg.Import, nil, logger),
		corrections: service.NewCorrectionService(stores, nil, logger),
		matches:     service.NewMatchService(stores, cfg.Import, logger),
		logger:      logger,
	}, variant, nil
}

// readInput 读取 --file 指定的文件（.xlsx 走工作簿解析），否则读标准输入
func readInput(c *cli.Context, svc *services) (string, string, error) {
	path := c.String("file")
	if path == "" || path == "-" {
		data, err := io.ReadAll(os.Stdin)
		return string(data), service.SourceCLI, err
	}
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		f, err := os.Open(path)
		if err != nil {
			return "", "", err
		}
		defer f.Close()
		text, err := svc.imports.ReadWorkbook(f, c.String("sheet"))
		return text, service.SourceXLSX, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", err
	}
	return string(data), service.SourceCLI, nil
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

var inputFlags = []cli.Flag{
	&cli.StringFlag{Name: "file", Aliases: []string{"f"}, Usage: "tab-separated text or .xlsx file (default stdin)"},
	&cli.StringFlag{Name: "sheet", Usage: "worksheet name for .xlsx input"},
}

func previewCommand() *cli.Command {
	return &cli.Command{
		Name:  "preview",
		Usage: "parse and validate rows without saving",
		Flags: inputFlags,
		Action: func(c *cli.Context) error {
			svc, variant, err := setup(c)
			if err != nil {
				return err
			}
			text, _, err := readInput(c, svc)
			if err != nil {
				return err
			}
			result, err := svc.imports.Preview(c.Context, variant, text)
			if err != nil {
				return err
			}
			return printJSON(result)
		},
	}
}

func importCommand() *cli.Command {
	return &cli.Command{
		Name:  "import",
		Usage: "parse, validate and save accepted rows",
		Flags: inputFlags,
		Action: func(c *cli.Context) error {
			svc, variant, err := setup(c)
			if err != nil {
				return err
			}
			text, source, err := readInput(c, svc)
			if err != nil {
				return err
			}
			result, err := svc.imports.Commit(c.Context, variant, text, source)
			if err != nil {
				return err
			}
			return printJSON(result)
		},
	}
}

func normalizeDatesCommand() *cli.Command {
	return &cli.Command{
		Name:  "normalize-dates",
		Usage: "rewrite stored dates to DD.MM.YYYY",
		Action: func(c *cli.Context) error {
			svc, variant, err := setup(c)
			if err != nil {
				return err
			}
			result, err := svc.corrections.NormalizeDates(c.Context, variant)
			if err != nil {
				return err
			}
			return printJSON(result)
		},
	}
}

func replaceCommand() *cli.Command {
	return &cli.Command{
		Name:  "replace",
		Usage: "substring replace in text fields",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "find", Required: true},
			&cli.StringFlag{Name: "replace"},
			&cli.StringFlag{Name: "scope", Value: service.ScopeAll, Usage: "all or tournament"},
			&cli.StringFlag{Name: "tournament"},
			&cli.StringFlag{Name: "field", Usage: "limit to one text field"},
		},
		Action: func(c *cli.Context) error {
			svc, variant, err := setup(c)
			if err != nil {
				return err
			}
			result, err := svc.corrections.Replace(c.Context, variant, service.ReplaceRequest{
				Find:       c.String("find"),
				Replace:    c.String("replace"),
				Scope:      c.String("scope"),
				Tournament: c.String("tournament"),
				Field:      c.String("field"),
			})
			if err != nil {
				return err
			}
			return printJSON(result)
		},
	}
}

func mergeCommand() *cli.Command {
	return &cli.Command{
		Name:  "merge",
		Usage: "merge tournaments into one name",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{Name: "source", Aliases: []string{"s"}, Required: true},
			&cli.StringFlag{Name: "target", Aliases: []string{"t"}, Required: true},
		},
		Action: func(c *cli.Context) error {
			svc, variant, err := setup(c)
			if err != nil {
				return err
			}
			result, err := svc.corrections.MergeTournaments(c.Context, variant, service.MergeRequest{
				Sources: c.StringSlice("source"),
				Target:  c.String("target"),
			})
			if err != nil {
				return err
			}
			return printJSON(result)
		},
	}
}

func tournamentsCommand() *cli.Command {
	return &cli.Command{
		Name:  "tournaments",
		Usage: "list distinct tournaments",
		Action: func(c *cli.Context) error {
			svc, variant, err := setup(c)
			if err != nil {
				return err
			}
			names, err := svc.matches.Tournaments(c.Context, variant)
			if err != nil {
				return err
			}
			for _, n := range names {
				fmt.Println(n)
			}
			return nil
		},
	}
}

func statsCommand() *cli.Command {
	return &cli.Command{
		Name:  "stats",
		Usage: "record, tournament and team counts",
		Action: func(c *cli.Context) error {
			svc, variant, err := setup(c)
			if err != nil {
				return err
			}
			stats, err := svc.matches.Statistics(c.Context, variant)
			if err != nil {
				return err
			}
			return printJSON(stats)
		},
	}
}
