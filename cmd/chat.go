package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/huangsam/clio/core"
	"github.com/huangsam/clio/internal/contract"
	"github.com/huangsam/clio/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// chatCmd sends one message or starts an interactive conversation.
var chatCmd = &cobra.Command{
	Use:   "chat [message]",
	Short: "Chat with the coping-aware assistant",
	Long: `Talk to the assistant using a category prompt tuned to a coping profile.

With a message argument, one reply is printed. Without it, an interactive session starts.
Sign in with --email to keep the conversation in the store.

Interactive commands:
  /category <name>  switch prompt category (general, emotional_support, career_guidance, personal_development, marketing)
  /profile <name>   switch coping profile (none, autonomous, impulsive, avoidant, isolative)
  /suggest <text>   suggest a category for a question
  /clear            forget the conversation so far
  /exit             leave

Examples:
  # One question with an emotional support prompt
  clio chat --category emotional_support --coping-profile avoidant "I keep putting things off"

  # Interactive session with a local model
  clio chat --llm-provider ollama --llm-model llama3`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		chatter, err := newChatter(rootCtx)
		if err != nil {
			contract.LogFatal("Failed to start assistant", err)
		}
		userID, err := sessionUserID(rootCtx, viper.GetString("email"))
		if err != nil {
			contract.LogFatal("Failed to sign in", err)
		}
		session := core.NewChatSession(userID, cfg.Category, cfg.Profile)

		if len(args) > 0 {
			printReply(sendMessage(rootCtx, chatter, session, strings.Join(args, " ")))
			return
		}
		if err := chatLoop(rootCtx, chatter, session); err != nil && !errors.Is(err, errInputClosed) {
			contract.LogFatal("Chat ended", err)
		}
	},
}

func sendMessage(ctx context.Context, chatter *core.Chatter, session *core.ChatSession, text string) core.ChatReply {
	reply, err := chatter.Send(ctx, session, text)
	if err != nil {
		return core.ChatReply{Text: err.Error(), Failed: true}
	}
	return reply
}

func printReply(reply core.ChatReply) {
	fmt.Printf("\nassistant> %s\n\n", reply.Text)
	if reply.Failed && reply.Reason != "" {
		contract.LogWarn("Assistant unavailable", errors.New(reply.Reason))
	}
}

// chatLoop runs the interactive session until /exit or end of input.
func chatLoop(ctx context.Context, chatter *core.Chatter, session *core.ChatSession) error {
	fmt.Printf("Chatting in %s mode with profile %s. Type /exit to leave.\n", session.Category, session.Profile)
	for {
		line, err := readLine("you> ")
		if err != nil {
			return err
		}
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "/") {
			if done := chatCommand(session, line); done {
				return nil
			}
			continue
		}
		printReply(sendMessage(ctx, chatter, session, line))
	}
}

// chatCommand applies one slash command and reports whether the session should end.
func chatCommand(session *core.ChatSession, line string) bool {
	name, arg, _ := strings.Cut(strings.TrimPrefix(line, "/"), " ")
	arg = strings.TrimSpace(arg)
	switch name {
	case "exit", "quit":
		return true
	case "clear":
		session.Clear()
		fmt.Println("Conversation cleared.")
	case "category":
		category, ok := schema.ParsePromptCategory(arg)
		if !ok {
			fmt.Printf("Unknown category %q\n", arg)
			return false
		}
		session.Category = category
		fmt.Printf("Category set to %s\n", category)
	case "profile":
		profile, ok := schema.ParseProfileType(arg)
		if !ok {
			fmt.Printf("Unknown profile %q\n", arg)
			return false
		}
		session.Profile = profile
		fmt.Printf("Profile set to %s\n", profile)
	case "suggest":
		fmt.Printf("Suggested category: %s\n", core.SuggestCategory(arg))
	default:
		fmt.Printf("Unknown command /%s\n", name)
	}
	return false
}
