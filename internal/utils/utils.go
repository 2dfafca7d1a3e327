package utils

import (
	"errors"
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/bwmarrin/discordgo"
)

// LogFile is where the bot writes its log alongside stdout.
const LogFile = "log.txt"

// Discord rejects messages longer than this.
const MaxMessageLength = 2000

func HandleUtilCommands(args []string, s *discordgo.Session, m *discordgo.MessageCreate) error {
	if len(args) < 2 {
		return UnknownCommand(s, m)
	}

	switch args[1] {
	case "log":
		err := dumpLog(s, m)
		if err != nil {
			return errors.Join(errors.New("failed to dump log,"), err)
		}
	default:
		err := UnknownCommand(s, m)
		if err != nil {
			return err
		}
	}

	return nil
}

func Hello(s *discordgo.Session, m *discordgo.MessageCreate) error {
	_, err := s.ChannelMessageSend(m.ChannelID, "world!")
	return err
}

func UnknownCommand(s *discordgo.Session, m *discordgo.MessageCreate) error {
	_, err := s.ChannelMessageSend(m.ChannelID, "unknown command")
	return err
}

func dumpLog(s *discordgo.Session, m *discordgo.MessageCreate) error {
	tail, err := logTail(LogFile, MaxMessageLength-len("``````"))
	if err != nil {
		return err
	}

	_, err = s.ChannelMessageSend(m.ChannelID, CodeBlock(tail))
	return err
}

// logTail returns at most the last limit bytes of the file at path, starting
// on a whole rune.
func logTail(path string, limit int) (string, error) {
	log, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	if len(log) > limit {
		log = log[len(log)-limit:]
		for len(log) > 0 && !utf8.RuneStart(log[0]) {
			log = log[1:]
		}
	}
	return string(log), nil
}

func CodeBlock(text string) string {
	return fmt.Sprintf("```%s```", text)
}
