// Package services contains the application core: the craft service that
// orchestrates generate -> run -> diagnose, and the doctor service for
// environment checks.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/doeshing/clicra-go/internal/domain"
	"github.com/doeshing/clicra-go/internal/ports"
	"github.com/doeshing/clicra-go/internal/prompt"
	"github.com/doeshing/clicra-go/internal/textproc"
)

// CraftService orchestrates one task end-to-end: build reference context,
// generate a command via the model, then either copy it to the clipboard or
// execute it and diagnose a failure.
type CraftService struct {
	ConfigProvider ports.ConfigProvider
	Chat           ports.ChatClient
	Runner         ports.CommandRunner
	Clipboard      ports.Clipboard
	History        ports.HistoryStore
	Renderer       ports.Renderer
	Logger         ports.Logger
}

// Run processes a single task.
func (s *CraftService) Run(req domain.CraftRequest) (domain.CraftResponse, error) {
	if s.ConfigProvider == nil || s.Chat == nil || s.Runner == nil || s.Renderer == nil || s.Logger == nil {
		return domain.CraftResponse{}, errors.New("services.CraftService dependencies not satisfied")
	}

	ctx := req.Context
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := s.ConfigProvider.Load(ctx)
	if err != nil {
		return domain.CraftResponse{}, fmt.Errorf("load config: %w", err)
	}

	maxChars := req.MaxChars
	if maxChars <= 0 {
		maxChars = cfg.Preferences.MaxOutputChars
	}
	if maxChars <= 0 {
		maxChars = domain.DefaultMaxOutputChars
	}

	model, err := resolveModel(cfg, req.ModelOverride)
	if err != nil {
		return domain.CraftResponse{}, err
	}

	resp := domain.CraftResponse{ModelUsed: model.Name}

	// Reference context runs before any model interaction. A nonzero exit of
	// the reference command is embedded as text, never branched on.
	if req.ReferCommand != "" {
		refCtx, err := s.buildReferenceContext(ctx, req.ReferCommand, maxChars)
		if err != nil {
			return resp, fmt.Errorf("reference command: %w", err)
		}
		resp.ReferenceContext = refCtx
	}

	genPrompt := prompt.Generation(req.Task, resp.ReferenceContext, req.Script, req.Strategy)
	if req.Verbose {
		s.echoPrompt(genPrompt)
	}

	s.Logger.Info("calling model", map[string]interface{}{"model": model.Name})
	command, found, err := s.generate(ctx, model, genPrompt, req.Strategy)
	if err != nil {
		return resp, fmt.Errorf("model call: %w", err)
	}
	if !found {
		// No fenced block in the response: nothing to run or copy.
		return resp, nil
	}
	resp.Command = command

	if !req.Run {
		s.copyToClipboard(&resp, command)
		s.saveHistory(cfg, req, resp, nil)
		return resp, nil
	}

	s.Renderer.Banner(fmt.Sprintf("-- RUN: %s", command))
	exec, err := s.Runner.Run(ctx, command, true)
	if err != nil {
		// The shell itself failed to start; distinct from a captured
		// nonzero exit.
		return resp, fmt.Errorf("run command: %w", err)
	}
	resp.Executed = true
	resp.ExecutionResult = &exec
	resp.ExitCode = exec.ExitCode
	s.saveHistory(cfg, req, resp, &exec)

	if exec.ExitCode != 0 {
		if err := s.diagnose(ctx, model, req, &resp, exec, maxChars); err != nil {
			return resp, err
		}
	}
	return resp, nil
}

// generate streams the model response to the renderer and extracts the
// command. With a final-answer-last strategy the response is printed plain
// and the last fenced block of the full text is taken afterwards; otherwise
// the streaming scanner highlights the first block as it arrives.
func (s *CraftService) generate(ctx context.Context, model domain.ModelDefinition, genPrompt string, strategy *domain.Strategy) (string, bool, error) {
	s.Renderer.Thinking(true)
	defer s.Renderer.Thinking(false)

	seq, err := s.Chat.Stream(ctx, model, genPrompt)
	if err != nil {
		return "", false, err
	}

	sink := func(line string) {
		s.Renderer.Thinking(false)
		s.Renderer.Print(line)
	}

	if strategy != nil && strategy.FinalAnswerLast {
		var lines []string
		for {
			line, ok := seq()
			if !ok {
				break
			}
			sink(line)
			lines = append(lines, line)
		}
		_, block, ok := textproc.ExtractBlock(strings.Join(lines, "\n"), true, nil)
		return block, ok, nil
	}

	block, ok := textproc.ScanBlock(seq, sink, s.Renderer.Highlight)
	return block, ok, nil
}

func (s *CraftService) diagnose(ctx context.Context, model domain.ModelDefinition, req domain.CraftRequest, resp *domain.CraftResponse, exec domain.ExecutionResult, maxChars int) error {
	s.Renderer.Banner("-- DEBUG")

	var stdout, stderr string
	if exec.Stdout != "" {
		stdout = textproc.Clip(exec.Stdout, maxChars)
	}
	if exec.Stderr != "" {
		stderr = textproc.Clip(exec.Stderr, maxChars)
	}
	analysisPrompt := prompt.Analysis(resp.Command, req.Task, resp.ReferenceContext, stdout, stderr)
	if req.Verbose {
		s.echoPrompt(analysisPrompt)
	}

	s.Renderer.Thinking(true)
	diagnosis, err := s.Chat.Complete(ctx, model, analysisPrompt)
	s.Renderer.Thinking(false)
	if err != nil {
		// One-shot escalation: a failed diagnosis call is not retried.
		return fmt.Errorf("analysis call: %w", err)
	}
	for _, line := range strings.Split(diagnosis, "\n") {
		s.Renderer.Print(line)
	}
	resp.Diagnosis = diagnosis
	return nil
}

func (s *CraftService) buildReferenceContext(ctx context.Context, command string, maxChars int) (string, error) {
	exec, err := s.Runner.Run(ctx, command, false)
	if err != nil {
		return "", err
	}
	parts := []string{"```", "$ " + command}
	if exec.Stdout != "" {
		parts = append(parts, strings.TrimRight(textproc.Clip(exec.Stdout, maxChars), "\n"))
	}
	if exec.Stderr != "" {
		parts = append(parts, strings.TrimRight(textproc.Clip(exec.Stderr, maxChars), "\n"))
	}
	if exec.ExitCode != 0 {
		parts = append(parts, fmt.Sprintf("EXIT CODE: %d", exec.ExitCode))
	}
	parts = append(parts, "```")
	return strings.Join(parts, "\n"), nil
}

func (s *CraftService) copyToClipboard(resp *domain.CraftResponse, command string) {
	if s.Clipboard == nil || !s.Clipboard.Enabled() {
		return
	}
	if err := s.Clipboard.Copy(command); err != nil {
		s.Logger.Warn("clipboard copy failed", map[string]interface{}{"error": err.Error()})
		return
	}
	resp.Copied = true
	s.Renderer.Banner("-- COPIED THE HIGHLIGHTED CODE TO CLIPBOARD")
}

func (s *CraftService) saveHistory(cfg domain.Config, req domain.CraftRequest, resp domain.CraftResponse, exec *domain.ExecutionResult) {
	if s.History == nil || cfg.History.Disabled {
		return
	}
	record := domain.HistoryRecord{
		Task:    req.Task,
		Command: resp.Command,
		Model:   resp.ModelUsed,
		Mode:    requestMode(req),
	}
	if exec != nil {
		record.Executed = true
		record.ExitCode = exec.ExitCode
		record.DurationMS = exec.DurationMS
	}
	if err := s.History.Save(record); err != nil {
		s.Logger.Warn("history save failed", map[string]interface{}{"error": err.Error()})
	}
}

func requestMode(req domain.CraftRequest) string {
	switch {
	case req.Run:
		return domain.ModeRun
	case req.Script:
		return domain.ModeScript
	case req.Strategy != nil:
		return domain.ModePrompt
	default:
		return domain.ModeCopy
	}
}

func (s *CraftService) echoPrompt(p string) {
	for _, line := range strings.Split(p, "\n") {
		s.Renderer.Verbose(line)
	}
}

// resolveModel picks a configured model by name, falling back to treating an
// unknown override as a raw model id on the default endpoint.
func resolveModel(cfg domain.Config, override string) (domain.ModelDefinition, error) {
	name := override
	if name == "" {
		name = cfg.Preferences.DefaultModel
	}
	for _, model := range cfg.Models {
		if model.Name == name {
			return model, nil
		}
	}
	if override != "" {
		return domain.ModelDefinition{Name: override, ModelID: override}, nil
	}
	if len(cfg.Models) > 0 {
		return cfg.Models[0], nil
	}
	return domain.ModelDefinition{}, fmt.Errorf("no model configured")
}

var _ domain.CraftService = (*CraftService)(nil)
