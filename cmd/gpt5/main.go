package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/chzyer/readline"
	"github.com/joho/godotenv"
	"github.com/kardolus/gpt5/api"
	"github.com/kardolus/gpt5/api/client"
	"github.com/kardolus/gpt5/api/http"
	"github.com/kardolus/gpt5/cmd/gpt5/utils"
	"github.com/kardolus/gpt5/config"
	"github.com/kardolus/gpt5/internal"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"
)

const (
	exitCommand      = "exit"
	historyFileName  = "history"
	webSearchMessage = "The model requested a web search. Suggested query: %q (max results: %s)\n"
)

var (
	interactiveMode bool
	rawOutput       bool
	showUsage       bool
	showConfig      bool
	setCompletions  string
	params          map[string]string
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "gpt5 [prompt]",
		Short:         "Send prompts to the GPT-5 responses API",
		Long:          "A command line client for the GPT-5 /v1/responses endpoint. Configuration is read from ~/.gpt5/config.yaml, OPENAI_* environment variables and flags, in that order.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}

	setFlags(rootCmd)
	viper.AutomaticEnv()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func setFlags(cmd *cobra.Command) {
	flags := cmd.Flags()

	flags.BoolVarP(&interactiveMode, "interactive", "i", false, "Start an interactive prompt; every line is sent as an independent request")
	flags.BoolVar(&rawOutput, "raw", false, "Print the raw JSON response")
	flags.BoolVar(&showUsage, "usage", false, "Print token usage after each response")
	flags.BoolVar(&showConfig, "show-config", false, "Print the effective configuration and exit")
	flags.StringVar(&setCompletions, "set-completions", "", "Print a completion script for bash, zsh, fish or powershell")
	flags.StringToStringVar(&params, "param", nil, "Extra top-level request parameter as key=value, repeatable")

	flags.StringP("model", "m", "", "Model identifier, e.g. gpt-5, gpt-5-mini, gpt-5-nano")
	flags.String("url", "", "Base URL of the API")
	flags.String("effort", "", "Reasoning effort: low, medium or high")
	flags.String("verbosity", "", "Verbosity: low, medium or high")
	flags.String("instructions", "", "System instructions")
	flags.Int("max-output-tokens", 0, "Upper bound for output tokens")
	flags.Float64("top-p", 0, "Nucleus sampling value between 0 and 1")
	flags.String("tool-choice", "", "Tool choice strategy, e.g. auto or none")
	flags.String("tools-file", "", "Path to a JSON array of tool declarations")
	flags.Bool("web-search", false, "Offer the web search tool to the model")
	flags.String("web-search-query", "", "Suggested web search query (enables web search)")
	flags.Int("web-search-max-results", 0, "Maximum number of web search results (enables web search)")
	flags.Bool("debug", false, "Log the generated cURL command and raw response")

	_ = viper.BindPFlags(flags)
}

func run(cmd *cobra.Command, args []string) error {
	if setCompletions != "" {
		return config.GenCompletions(cmd, setCompletions, cmd.OutOrStdout())
	}

	// A missing .env file is not an error.
	_ = godotenv.Load()

	manager := config.NewManager(config.New()).WithEnvironment()
	applyFlags(cmd, &manager.Config)

	if manager.Config.Debug {
		internal.SetAllowedLogLevels(zapcore.InfoLevel, zapcore.DebugLevel)
	} else {
		internal.SetAllowedLogLevels(zapcore.InfoLevel)
	}
	defer func() { _ = zap.L().Sync() }()

	if showConfig {
		out, err := manager.ShowConfig()
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	}

	apiKey, err := manager.ResolveAPIKey()
	if err != nil {
		return err
	}
	if apiKey == "" {
		apiKey = viper.GetString(manager.APIKeyEnvVarName())
	}
	if apiKey == "" {
		return fmt.Errorf("API key is required. Please set the %s environment variable or api_key_file", manager.APIKeyEnvVarName())
	}
	manager.Config.APIKey = apiKey

	c := client.New(http.RealCallerFactory, manager.Config)

	base, err := requestBuilder(cmd, c)
	if err != nil {
		return err
	}

	if interactiveMode {
		return runInteractive(cmd.Context(), c, base, cmd.OutOrStdout())
	}

	prompt := strings.Join(args, " ")
	if prompt == "" && !term.IsTerminal(int(os.Stdin.Fd())) {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("failed to read prompt from stdin: %w", err)
		}
		prompt = strings.TrimSpace(string(data))
	}
	if prompt == "" {
		return errors.New("you must specify a prompt, pipe one on stdin or use --interactive")
	}

	_, err = ask(cmd.Context(), c, base, prompt, cmd.OutOrStdout())
	return err
}

// applyFlags overrides configuration values with the flags that were set.
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()

	if flags.Changed("model") {
		cfg.Model = viper.GetString("model")
	}
	if flags.Changed("url") {
		cfg.URL = viper.GetString("url")
	}
	if flags.Changed("effort") {
		cfg.Effort = viper.GetString("effort")
	}
	if flags.Changed("verbosity") {
		cfg.Verbosity = viper.GetString("verbosity")
	}
	if flags.Changed("instructions") {
		cfg.Instructions = viper.GetString("instructions")
	}
	if flags.Changed("max-output-tokens") {
		cfg.MaxOutputTokens = viper.GetInt("max-output-tokens")
	}
	if flags.Changed("top-p") {
		cfg.TopP = viper.GetFloat64("top-p")
	}
	if flags.Changed("web-search") {
		cfg.WebSearch = viper.GetBool("web-search")
	}
	if flags.Changed("debug") {
		cfg.Debug = viper.GetBool("debug")
	}
}

func requestBuilder(cmd *cobra.Command, c *client.Client) (api.RequestBuilder, error) {
	flags := cmd.Flags()
	b := c.NewRequestBuilder(api.CustomModel(c.Config.Model))

	if path := viper.GetString("tools-file"); path != "" {
		tools, err := utils.ReadToolsFile(path)
		if err != nil {
			return b, err
		}
		b = b.Tools(tools)
	}
	if flags.Changed("tool-choice") {
		b = b.ToolChoice(viper.GetString("tool-choice"))
	}
	if flags.Changed("web-search-query") {
		b = b.WebSearchQuery(viper.GetString("web-search-query"))
	}
	if flags.Changed("web-search-max-results") {
		b = b.WebSearchMaxResults(viper.GetInt("web-search-max-results"))
	}
	for k, v := range utils.ParseParams(params) {
		b = b.Parameter(k, v)
	}

	return b, nil
}

// ask sends a single prompt and prints the outcome. It returns the tokens
// used by the call.
func ask(ctx context.Context, c *client.Client, base api.RequestBuilder, prompt string, out io.Writer) (int, error) {
	req := c.Build(base.Input(prompt))

	resp, err := c.Send(ctx, req)
	if err != nil {
		return 0, err
	}

	if rawOutput {
		data, err := json.MarshalIndent(resp, "", "  ")
		if err != nil {
			return 0, err
		}
		fmt.Fprintln(out, string(data))
		return resp.TotalTokens(), nil
	}

	if resp.HasError() {
		fmt.Fprintf(out, "the response reported an error: %s\n", resp.Error)
	}

	for _, text := range resp.AllText() {
		fmt.Fprintln(out, text)
	}

	fmt.Fprint(out, utils.FormatFunctionCalls(resp.FunctionCalls()))

	if resp.Status == api.StatusRequiresAction && req.WebSearch != nil {
		query, limit := "", "unset"
		if req.WebSearch.Query != nil {
			query = *req.WebSearch.Query
		}
		if req.WebSearch.MaxResults != nil {
			limit = fmt.Sprintf("%d", *req.WebSearch.MaxResults)
		}
		fmt.Fprintf(out, webSearchMessage, query, limit)
	}

	if !resp.IsCompleted() && resp.Status != "" {
		zap.S().Infof("response status: %s", resp.Status)
	}

	if showUsage {
		fmt.Fprintln(out, utils.FormatUsage(resp))
	}

	return resp.TotalTokens(), nil
}

func runInteractive(ctx context.Context, c *client.Client, base api.RequestBuilder, out io.Writer) error {
	historyFile := ""
	if home, err := internal.GetConfigHome(); err == nil {
		historyFile = filepath.Join(home, historyFileName)
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          config.FormatPrompt(c.Config.CommandPrompt, 1, 0, c.Config.Model, time.Now()),
		HistoryFile:     historyFile,
		InterruptPrompt: "^C",
		EOFPrompt:       exitCommand,
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	counter, usage := 1, 0

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == exitCommand {
			return nil
		}

		tokens, err := ask(ctx, c, base, line, out)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}

		counter++
		usage += tokens
		rl.SetPrompt(config.FormatPrompt(c.Config.CommandPrompt, counter, usage, c.Config.Model, time.Now()))
	}
}
