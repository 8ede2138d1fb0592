package services

import (
	"strings"
	"sync"
)

// SuggestionProvider produces prompt suggestions for anonymous senders as a
// single '||'-delimited string. An external text-generation service can be
// plugged in behind this interface.
type SuggestionProvider interface {
	Suggest() (string, error)
}

// StaticSuggestionProvider rotates through a fixed pool of prompt sets.
type StaticSuggestionProvider struct {
	sets []string
	next int
	mu   sync.Mutex
}

// NewStaticSuggestionProvider creates a provider with the default prompt pool.
func NewStaticSuggestionProvider() *StaticSuggestionProvider {
	return &StaticSuggestionProvider{
		sets: []string{
			strings.Join([]string{
				"What's a hobby you've recently started?",
				"If you could have dinner with any historical figure, who would it be?",
				"What's a simple thing that makes you happy?",
			}, "||"),
			strings.Join([]string{
				"What's a book or movie that changed how you see the world?",
				"If you could instantly learn one skill, what would it be?",
				"What's the best piece of advice you've ever received?",
			}, "||"),
			strings.Join([]string{
				"What's a place you'd love to visit someday?",
				"What small win are you proud of this week?",
				"If your life had a theme song, what would it be?",
			}, "||"),
		},
	}
}

// Suggest returns the next prompt set in rotation.
func (p *StaticSuggestionProvider) Suggest() (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	set := p.sets[p.next%len(p.sets)]
	p.next++
	return set, nil
}
