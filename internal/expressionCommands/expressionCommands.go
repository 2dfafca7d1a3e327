package expressionCommands

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/yuqzii/uttrykk/internal/database"
	"github.com/yuqzii/uttrykk/internal/utils"
	"golang.org/x/time/rate"
)

type expressionStore interface {
	SaveExpression(ctx context.Context, expr database.SavedExpression) error
	GetExpression(ctx context.Context, name string) (database.SavedExpression, error)
	ListExpressions(ctx context.Context) ([]string, error)
}

type Manager struct {
	store expressionStore

	plotWidth    int
	plotHeight   int
	plotRate     rate.Limit
	plotBurst    int
	storeTimeout time.Duration

	limiters    map[string]*rate.Limiter
	maxLimiters int
	mu          sync.Mutex
}

type managerOption func(*Manager)

// NewManager creates the handler for !expr commands. A nil store disables
// save, load and list.
func NewManager(store expressionStore, opts ...managerOption) *Manager {
	const (
		defaultPlotWidth    int           = 60
		defaultPlotHeight   int           = 20
		defaultPlotRate     rate.Limit    = 0.2
		defaultPlotBurst    int           = 2
		defaultStoreTimeout time.Duration = 5 * time.Second
		defaultMaxLimiters  int           = 1000
	)

	m := &Manager{
		store:        store,
		plotWidth:    defaultPlotWidth,
		plotHeight:   defaultPlotHeight,
		plotRate:     defaultPlotRate,
		plotBurst:    defaultPlotBurst,
		storeTimeout: defaultStoreTimeout,
		limiters:     make(map[string]*rate.Limiter),
		maxLimiters:  defaultMaxLimiters,
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

func WithPlotSize(width, height int) managerOption {
	return func(m *Manager) {
		m.plotWidth = width
		m.plotHeight = height
	}
}

// WithPlotRate limits how many plots each channel may request per second.
func WithPlotRate(perSecond float64, burst int) managerOption {
	return func(m *Manager) {
		m.plotRate = rate.Limit(perSecond)
		m.plotBurst = burst
	}
}

func WithStoreTimeout(d time.Duration) managerOption {
	return func(m *Manager) {
		m.storeTimeout = d
	}
}

func (m *Manager) plotLimiter(channelID string) *rate.Limiter {
	m.mu.Lock()
	defer m.mu.Unlock()

	limiter, ok := m.limiters[channelID]
	if !ok {
		if len(m.limiters) >= m.maxLimiters {
			m.pruneLimiters()
		}
		limiter = rate.NewLimiter(m.plotRate, m.plotBurst)
		m.limiters[channelID] = limiter
	}
	return limiter
}

// pruneLimiters forgets channels whose budget has fully refilled. Must be
// called with mu held.
func (m *Manager) pruneLimiters() {
	for channelID, limiter := range m.limiters {
		if limiter.Tokens() >= float64(m.plotBurst) {
			delete(m.limiters, channelID)
		}
	}
}

func (m *Manager) HandleExpressionCommands(args []string, s *discordgo.Session, msg *discordgo.MessageCreate) error {
	ctx, cancel := context.WithTimeout(context.Background(), m.storeTimeout)
	defer cancel()

	reply, err := m.Reply(ctx, args, msg.ChannelID, msg.Author.ID)
	if err != nil {
		log.Println("expression command failed, ", err)
	}
	if reply == "" {
		return utils.UnknownCommand(s, msg)
	}

	_, err = s.ChannelMessageSend(msg.ChannelID, reply)
	return err
}

// Reply builds the answer to an !expr command. The error is only for the log,
// the reply text already tells the user what went wrong. An empty reply means
// the subcommand is unknown.
func (m *Manager) Reply(ctx context.Context, args []string, channelID, authorID string) (string, error) {
	if len(args) < 2 {
		return "", nil
	}

	switch args[1] {
	case "eval":
		if len(args) < 4 {
			return usage("eval <value> <expression>"), nil
		}
		return evalReply(args[2], joinArgs(args[3:])), nil
	case "print":
		if len(args) < 3 {
			return usage("print <expression>"), nil
		}
		return printReply(joinArgs(args[2:])), nil
	case "ast":
		if len(args) < 3 {
			return usage("ast <expression>"), nil
		}
		return astReply(joinArgs(args[2:])), nil
	case "plot":
		if len(args) < 5 {
			return usage("plot <from> <to> <expression>"), nil
		}
		if !m.plotLimiter(channelID).Allow() {
			return "Slow down, this channel is plotting too often.", nil
		}
		return plotReply(args[2], args[3], joinArgs(args[4:]), m.plotWidth, m.plotHeight), nil
	case "save":
		if len(args) < 4 {
			return usage("save <name> <expression>"), nil
		}
		return m.saveReply(ctx, args[2], joinArgs(args[3:]), authorID)
	case "load":
		if len(args) < 3 {
			return usage("load <name> [value]"), nil
		}
		value := ""
		if len(args) > 3 {
			value = args[3]
		}
		return m.loadReply(ctx, args[2], value)
	case "list":
		return m.listReply(ctx)
	default:
		return "", nil
	}
}
