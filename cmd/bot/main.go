package main

import (
	"context"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/yuqzii/uttrykk/internal/database"
	"github.com/yuqzii/uttrykk/internal/expressionCommands"
	"github.com/yuqzii/uttrykk/internal/guessTheFunction"
	"github.com/yuqzii/uttrykk/internal/utils"

	"github.com/bwmarrin/discordgo"
)

const prefix string = "!"

func main() {
	logFile, err := os.OpenFile(utils.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		log.Fatal("Could not open log file, ", err)
	}
	defer logFile.Close()
	log.SetOutput(io.MultiWriter(os.Stdout, logFile))

	token := os.Getenv("TOKEN")
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		log.Fatal("Could not create bot, ", err)
	}

	// The bot runs without save and load if the database is away
	var exprManager *expressionCommands.Manager
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	store, err := database.Connect(ctx, database.ConnString())
	if err == nil {
		err = store.EnsureSchema(ctx)
	}
	cancel()
	if err != nil {
		log.Println("Saved expressions disabled, ", err)
		if store != nil {
			store.Close()
		}
		exprManager = expressionCommands.NewManager(nil)
	} else {
		defer store.Close()
		exprManager = expressionCommands.NewManager(store)
	}

	session.AddHandler(func(session *discordgo.Session, message *discordgo.MessageCreate) {
		// Don't react to messages from this bot
		if message.Author.ID == session.State.User.ID {
			return
		}

		// Don't react to messages without the prefix
		if !strings.HasPrefix(message.Content, prefix) {
			return
		}

		// Get message arguments separated by whitespace
		args := strings.Fields(message.Content)
		command := strings.TrimPrefix(args[0], prefix)

		switch command {
		case "hello":
			err := utils.Hello(session, message)
			if err != nil {
				log.Println("Hello command failed to execute, ", err)
			}

		case "expr":
			err := exprManager.HandleExpressionCommands(args, session, message)
			if err != nil {
				log.Println("Expression command failed, ", err)
			}

		case "gtf":
			err := guessTheFunction.HandleGuessTheFunctionCommands(args, session, message)
			if err != nil {
				log.Println("Guess the function command failed, ", err)
			}

		case "util":
			err := utils.HandleUtilCommands(args, session, message)
			if err != nil {
				log.Println("Util command failed, ", err)
			}
		}
	})

	session.Identify.Intents = discordgo.IntentsAllWithoutPrivileged

	err = session.Open()
	if err != nil {
		log.Fatal("Could not open session with token ", err)
	}

	// Close session when application exits
	defer func() {
		err = session.Close()
		if err != nil {
			log.Println(err)
		}
	}()

	log.Println("Bot is online")

	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc
}
