package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/huangsam/clio/core"
	"github.com/huangsam/clio/internal/auth"
	"github.com/huangsam/clio/internal/datastore"
	"github.com/huangsam/clio/internal/llm"
	"github.com/huangsam/clio/internal/webpage"
	"golang.org/x/term"
)

// newCompleter connects the configured text-generation provider.
func newCompleter(ctx context.Context) (*llm.Completer, error) {
	llmCfg := llm.ConfigFrom(cfg)
	chat, err := llm.NewChatModel(ctx, llmCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to set up %s provider: %w. Set --llm-api-key or CLIO_LLM_API_KEY", cfg.LLMProvider, err)
	}
	return llm.NewCompleter(chat, llmCfg, logger), nil
}

// newEmbedder connects the configured embedding provider.
func newEmbedder(ctx context.Context) (*llm.Embedder, error) {
	llmCfg := llm.ConfigFrom(cfg)
	embedder, err := llm.NewEmbeddingModel(ctx, llmCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to set up %s embeddings: %w", cfg.LLMProvider, err)
	}
	return llm.NewEmbedder(embedder, llmCfg, logger), nil
}

// newChatter wires the completer and the global store into a Chatter.
func newChatter(ctx context.Context) (*core.Chatter, error) {
	completer, err := newCompleter(ctx)
	if err != nil {
		return nil, err
	}
	chatter := core.NewChatter(completer, datastore.Manager.GetStore(), logger)
	chatter.HistoryTurns = cfg.HistoryTurns
	return chatter, nil
}

// newSEOAnalyzer wires the page fetcher and completer.
func newSEOAnalyzer(ctx context.Context) (*core.SEOAnalyzer, error) {
	completer, err := newCompleter(ctx)
	if err != nil {
		return nil, err
	}
	return &core.SEOAnalyzer{
		Fetcher:   webpage.NewFetcher(cfg.FetchTimeout),
		Completer: completer,
		Logger:    logger,
	}, nil
}

// stdin is shared by every interactive prompt so buffered input is never lost.
var stdin = bufio.NewReader(os.Stdin)

// errInputClosed is returned when stdin ends during an interactive prompt.
var errInputClosed = errors.New("input closed")

// readLine prints prompt and returns the next trimmed line.
func readLine(prompt string) (string, error) {
	fmt.Print(prompt)
	line, err := stdin.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		if errors.Is(err, io.EOF) {
			return "", errInputClosed
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// readSecret reads a password without echo when stdin is a terminal.
func readSecret(prompt string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return readLine(prompt)
	}
	fmt.Print(prompt)
	secret, err := term.ReadPassword(fd)
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(secret), nil
}

// sessionUserID logs in with --email when given and returns the user id, or 0 for anonymous use.
func sessionUserID(ctx context.Context, email string) (int64, error) {
	if email == "" {
		return 0, nil
	}
	password, err := readSecret("Password: ")
	if err != nil {
		return 0, err
	}
	session, err := auth.NewService(datastore.Manager.GetStore()).Login(ctx, email, password)
	if err != nil {
		return 0, err
	}
	fmt.Printf("Signed in as %s\n", session.Name)
	return session.UserID, nil
}
