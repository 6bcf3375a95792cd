package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spigell/hh-interviewer/internal/ai/gemini"
	"github.com/spigell/hh-interviewer/internal/interview"
	"github.com/spigell/hh-interviewer/internal/logger"
	"github.com/spigell/hh-interviewer/internal/report"
	"github.com/spigell/hh-interviewer/internal/secrets"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const aiProvider = "gemini"

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run an interview session (interactive by default, scripted with --scenario)",
	Run: func(cmd *cobra.Command, _ []string) {
		run(cmd)
	},
}

// scenario is a scripted interview read from a JSON file.
type scenario struct {
	ParticipantName string   `json:"participant_name"`
	Position        string   `json:"position"`
	Grade           string   `json:"grade"`
	Experience      string   `json:"experience"`
	UserResponses   []string `json:"user_responses"`
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP("scenario", "s", "", "path to a JSON scenario file with scripted candidate responses")
	runCmd.Flags().BoolP("thoughts", "t", false, "show internal agent thoughts after every turn")
}

// run is the main command for the cli.
func run(cmd *cobra.Command) {
	ctx := context.Background()

	zlog, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		zlog.Fatal("getting a config", zap.Error(err))
	}

	zlog.Info("starting the hh-interviewer", zap.String("version", version))

	if config == nil {
		zlog.Fatal("config is required")
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name: "gemini api key",
		File: config.APIKeyFile,
	})
	if err != nil {
		zlog.Fatal(
			"loading gemini api key",
			zap.Error(err),
			zap.String("hint", "set GEMINI_API_KEY_FILE environment variable or the 'api-key-file' key in the configuration file"),
		)
	}

	coach, err := buildCoach(ctx, config, apiKey, zlog)
	if err != nil {
		zlog.Fatal("building interview coach", zap.Error(err))
	}

	showThoughts := cmd.Flag("thoughts").Value.String() == "true"

	if path := cmd.Flag("scenario").Value.String(); path != "" {
		if err := runScenario(ctx, coach, path, showThoughts); err != nil {
			zlog.Fatal("running scenario", zap.Error(err))
		}
		return
	}

	if err := runInteractive(ctx, coach, showThoughts); err != nil {
		zlog.Fatal("running interview", zap.Error(err))
	}
}

func buildCoach(ctx context.Context, config *Config, apiKey string, zlog *zap.Logger) (*interview.Coach, error) {
	models := gemini.Models{}
	if config.Models != nil {
		models.Interviewer = config.Models.Interviewer
		models.Observer = config.Models.Observer
		models.Evaluator = config.Models.Evaluator
	}

	gen, err := gemini.NewGenerator(ctx, apiKey, models,
		config.MaxTokens, config.Temperature, config.MaxRetries,
		logger.WithAgentFields(zlog, aiProvider, ""),
	)
	if err != nil {
		return nil, fmt.Errorf("building gemini generator: %w", err)
	}

	evaluator := interview.NewEvaluator(gen, logger.WithAgentFields(zlog, aiProvider, "observer"))
	director := interview.NewDirector(gen, logger.WithAgentFields(zlog, aiProvider, "interviewer"))
	compiler := report.NewCompiler(gen, logger.WithAgentFields(zlog, aiProvider, "evaluator"))

	cfg := interview.CoachConfig{
		MaxQuestions: config.MaxQuestions,
		LogDir:       config.LogDir,
	}

	return interview.NewCoach(evaluator, director, compiler, cfg, zlog), nil
}

func runInteractive(ctx context.Context, coach *interview.Coach, showThoughts bool) error {
	fmt.Println("Введите информацию о кандидате:")

	name, err := askRequired("Имя кандидата")
	if err != nil {
		return err
	}
	position, err := askRequired("Позиция (например, Backend Developer)")
	if err != nil {
		return err
	}
	grade, err := askRequired("Грейд (Junior/Middle/Senior)")
	if err != nil {
		return err
	}
	experience, err := askRequired("Опыт")
	if err != nil {
		return err
	}

	opening, err := coach.Start(ctx, name, position, grade, experience)
	if err != nil {
		return err
	}

	fmt.Printf("\n[Интервьюер]: %s\n", opening)

	for {
		answer, err := askRequired("Ваш ответ (или 'стоп интервью' для завершения)")
		if err != nil {
			return err
		}

		reply, err := coach.Submit(ctx, answer)
		if err != nil {
			return err
		}

		if showThoughts && reply.InternalNotes != "" {
			fmt.Printf("\n[Внутренние мысли агентов]:\n%s\n", reply.InternalNotes)
		}

		if reply.Terminated {
			fmt.Printf("\nИНТЕРВЬЮ ЗАВЕРШЕНО\n\n%s\n", reply.Message)
			return nil
		}

		fmt.Printf("\n[Интервьюер]: %s\n", reply.Message)
	}
}

func runScenario(ctx context.Context, coach *interview.Coach, path string, showThoughts bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading scenario file: %w", err)
	}

	var sc scenario
	if err := json.Unmarshal(data, &sc); err != nil {
		return fmt.Errorf("parsing scenario file: %w", err)
	}

	fmt.Printf("Запуск сценария для: %s\nПозиция: %s, Грейд: %s\n", sc.ParticipantName, sc.Position, sc.Grade)

	opening, err := coach.Start(ctx, sc.ParticipantName, sc.Position, sc.Grade, sc.Experience)
	if err != nil {
		return err
	}

	fmt.Printf("\n[Интервьюер]: %s\n", opening)

	terminated := false
	for i, response := range sc.UserResponses {
		fmt.Printf("\n[Ход %d]: %s\n", i+1, response)

		reply, err := coach.Submit(ctx, response)
		if err != nil {
			return err
		}

		if showThoughts && reply.InternalNotes != "" {
			fmt.Printf("\n[Внутренние мысли агентов]:\n%s\n", reply.InternalNotes)
		}

		if reply.Terminated {
			fmt.Printf("\nИНТЕРВЬЮ ЗАВЕРШЕНО\n\n%s\n", reply.Message)
			terminated = true
			break
		}

		fmt.Printf("\n[Интервьюер]: %s\n", reply.Message)
	}

	// A scenario that ran out of responses without a termination phrase
	// still deserves a saved transcript.
	if !terminated {
		filename := fmt.Sprintf("interview_log_%s.json", strings.ReplaceAll(sc.ParticipantName, " ", "_"))
		path, err := coach.Save(filename)
		if err != nil {
			return fmt.Errorf("saving interview log: %w", err)
		}
		fmt.Printf("\nЛог сохранен в: %s\n", path)
	}

	return nil
}

func askRequired(label string) (string, error) {
	prompt := promptui.Prompt{
		Label: label,
		Validate: func(input string) error {
			if strings.TrimSpace(input) == "" {
				return fmt.Errorf("значение не может быть пустым")
			}
			return nil
		},
	}

	value, err := prompt.Run()
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(value), nil
}
