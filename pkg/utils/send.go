package utils

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

const (
	maxMessageSize = 2000
)

// Chunk pairs chunks together into messages surrounded by prefix and suffix.
// If the chunks don't fit in a single discord message they are split up, and every
// message is surrounded by the prefix and suffix
func Chunk(prefix, suffix string, chunks []string) ([]string, error) {
	var output string
	messages := []string{}
	psLength := len(prefix) + len(suffix)
	for _, chunk := range chunks {
		if len(chunk)+psLength >= maxMessageSize {
			return nil, fmt.Errorf("single chunk is too long")
		}

		if len(output)+len(chunk)+psLength >= maxMessageSize {
			messages = append(messages, prefix+output+suffix)
			output = ""
		}
		output += chunk
	}

	if len(output) > 0 {
		messages = append(messages, prefix+output+suffix)
	}

	return messages, nil
}

// SendChunks sends the chunks to the given channel, see Chunk
func SendChunks(s *discordgo.Session, channelID, prefix, suffix string, chunks []string) error {
	messages, err := Chunk(prefix, suffix, chunks)
	if err != nil {
		return err
	}

	for _, message := range messages {
		if _, err := s.ChannelMessageSend(channelID, message); err != nil {
			return err
		}
	}

	return nil
}
