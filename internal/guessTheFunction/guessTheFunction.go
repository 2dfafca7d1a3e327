package guessTheFunction

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"

	"github.com/bwmarrin/discordgo"
	"github.com/yuqzii/uttrykk/internal/utils"
)

type gtfRound struct {
	fn        *Function
	channelID string
	lb        float64
	ub        float64
}

var (
	activeRounds = make(map[string]*gtfRound)
	roundsMu     sync.Mutex
)

var ErrNoActiveRound = errors.New("no active round in current channel")
var ErrRoundActive = errors.New("a round is already active in current channel")

func parseGTFStartRoundArgs(args []string) (functionDefinition string, domainLowerBound float64, domainUpperBound float64, err error) {
	if len(args) < 5 {
		return "", 0, 0, fmt.Errorf("invalid format, too few arguments")
	}

	if domainLowerBound, err = strconv.ParseFloat(args[2], 64); err != nil {
		return "", 0, 0, fmt.Errorf("float parsing error, %w", err)
	}
	if domainUpperBound, err = strconv.ParseFloat(args[3], 64); err != nil {
		return "", 0, 0, fmt.Errorf("float parsing error, %w", err)
	}
	if !(domainLowerBound < domainUpperBound) {
		return "", 0, 0, fmt.Errorf("domain [%g, %g] is empty", domainLowerBound, domainUpperBound)
	}

	functionDefinition = strings.Join(args[4:], " ")

	return functionDefinition, domainLowerBound, domainUpperBound, nil
}

func startRound(channelID string, args []string) error {
	funcDef, lwrBound, uprBound, err := parseGTFStartRoundArgs(args)
	if err != nil {
		return fmt.Errorf("parsing arguments: %w", err)
	}

	fn, err := MakeNewFunction(funcDef)
	if err != nil {
		return err
	}

	roundsMu.Lock()
	defer roundsMu.Unlock()

	if _, ok := activeRounds[channelID]; ok {
		return ErrRoundActive
	}
	activeRounds[channelID] = &gtfRound{
		fn:        fn,
		channelID: channelID,
		lb:        lwrBound,
		ub:        uprBound,
	}
	return nil
}

func getRound(channelID string) (*gtfRound, error) {
	roundsMu.Lock()
	defer roundsMu.Unlock()

	r, ok := activeRounds[channelID]
	if !ok {
		return nil, ErrNoActiveRound
	}
	return r, nil
}

func endRound(channelID string) (*gtfRound, error) {
	roundsMu.Lock()
	defer roundsMu.Unlock()

	r, ok := activeRounds[channelID]
	if !ok {
		return nil, ErrNoActiveRound
	}
	delete(activeRounds, channelID)
	return r, nil
}

func queryReply(channelID, xText string) (string, error) {
	x, err := strconv.ParseFloat(xText, 64)
	if err != nil {
		return "", fmt.Errorf("float parsing error, %w", err)
	}

	r, err := getRound(channelID)
	if err != nil {
		return "", err
	}
	if x < r.lb || x > r.ub {
		return fmt.Sprintf("x must be in the domain [%g, %g].", r.lb, r.ub), nil
	}

	return fmt.Sprintf("f(%g) = %g", x, r.fn.Eval(x)), nil
}

func guessReply(channelID, def string) (string, error) {
	r, err := getRound(channelID)
	if err != nil {
		return "", err
	}

	correct, err := guess(def, r)
	if err != nil {
		return "", err
	}
	if !correct {
		return wrongGuessMsg, nil
	}

	// Someone else may have ended the round while we sampled
	if _, err := endRound(channelID); err != nil {
		return "", err
	}
	return correctGuessMsg(r, def), nil
}

func stopReply(channelID string) (string, error) {
	r, err := endRound(channelID)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Round stopped. The function was `%s`.", r.fn), nil
}

func startGTFRound(args []string, s *discordgo.Session, m *discordgo.MessageCreate) error {
	log.Println("starting GTF round!")

	// Delete start message so other users can't see the function
	err := s.ChannelMessageDelete(m.ChannelID, m.Message.ID)
	if err != nil {
		return fmt.Errorf("deleting start message: %w", err)
	}

	if err := startRound(m.ChannelID, args); err != nil {
		return err
	}

	// Confirmation message
	_, err = s.ChannelMessageSend(m.ChannelID, "GTF Round started!")
	if err != nil {
		return fmt.Errorf("failed to send confirmation message, %w", err)
	}

	return nil
}

func HandleGuessTheFunctionCommands(args []string, s *discordgo.Session, m *discordgo.MessageCreate) error {
	if len(args) < 2 {
		return utils.UnknownCommand(s, m)
	}

	var reply string
	var err error
	switch args[1] {
	case "start":
		err = startGTFRound(args, s, m)
	case "query":
		if len(args) < 3 {
			reply = "Usage: `!gtf query <x>`"
			break
		}
		reply, err = queryReply(m.ChannelID, args[2])
	case "guess":
		if len(args) < 3 {
			reply = "Usage: `!gtf guess <function>`"
			break
		}
		reply, err = guessReply(m.ChannelID, strings.Join(args[2:], " "))
	case "stop":
		reply, err = stopReply(m.ChannelID)
	default:
		return utils.UnknownCommand(s, m)
	}

	if err != nil {
		_, sendErr := s.ChannelMessageSend(m.ChannelID, err.Error())
		return errors.Join(err, sendErr)
	}
	if reply == "" {
		return nil
	}

	_, err = s.ChannelMessageSend(m.ChannelID, reply)
	return err
}
