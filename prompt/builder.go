package prompt

import (
	"math/rand"

	log "github.com/sirupsen/logrus"
)

// Mode selects how the prompt for a generative source is built
type Mode int

const (
	// ModeRandom picks one of the other modes per run
	ModeRandom Mode = iota
	// ModeSubjectArtist combines a random subject line with a random artist line
	ModeSubjectArtist
	// ModePrompt draws a full prompt line from the prompts file
	ModePrompt
)

const modeCount = 2

// Builder assembles prompt and caption text from the configured corpus
// files and the template engine
type Builder struct {
	Engine *Engine
	Lines  *LineStore

	ArtistsFile  string
	SubjectsFile string
	PromptsFile  string

	Preamble   string
	Connector  string
	Postscript string

	// ParseText enables template resolution on every prompt part
	ParseText bool

	rnd *rand.Rand
}

// NewBuilder creates a Builder, rnd is used for the random prompt mode
func NewBuilder(engine *Engine, lines *LineStore, rnd *rand.Rand) *Builder {
	return &Builder{Engine: engine, Lines: lines, rnd: rnd}
}

// SubjectArtistPrompt draws a subject and an artist line and concatenates
// preamble+subject+connector+artist+postscript. The subject doubles as the
// title, the artist line as the artist caption.
func (b *Builder) SubjectArtistPrompt() (prompt, artist, title string, err error) {
	artist, err = b.Lines.RandomLine(b.ArtistsFile)
	if err != nil {
		return "", "", "", err
	}
	title, err = b.Lines.RandomLine(b.SubjectsFile)
	if err != nil {
		return "", "", "", err
	}

	preamble, connector, postscript := b.Preamble, b.Connector, b.Postscript
	if b.ParseText {
		artist = b.Engine.Resolve(artist)
		title = b.Engine.Resolve(title)
		preamble = b.Engine.Resolve(preamble)
		connector = b.Engine.Resolve(connector)
		postscript = b.Engine.Resolve(postscript)
	}

	prompt = preamble + title + connector + artist + postscript
	return prompt, artist, title, nil
}

// Prompt draws one line from the prompts file and concatenates
// preamble+prompt+postscript. The drawn line doubles as the title.
func (b *Builder) Prompt() (prompt, title string, err error) {
	title, err = b.Lines.RandomLine(b.PromptsFile)
	if err != nil {
		return "", "", err
	}

	preamble, postscript := b.Preamble, b.Postscript
	if b.ParseText {
		title = b.Engine.Resolve(title)
		preamble = b.Engine.Resolve(preamble)
		postscript = b.Engine.Resolve(postscript)
	}

	prompt = preamble + title + postscript
	return prompt, title, nil
}

// Build resolves the prompt mode and returns prompt, artist and title text.
// ModeRandom picks a concrete mode first, an invalid mode logs a warning and
// falls back to ModePrompt.
func (b *Builder) Build(logger log.FieldLogger, mode Mode) (prompt, artist, title string, err error) {
	if mode == ModeRandom {
		mode = Mode(1 + b.rnd.Intn(modeCount))
	}

	switch mode {
	case ModeSubjectArtist:
		return b.SubjectArtistPrompt()
	case ModePrompt:
	default:
		logger.Warnf("Invalid prompt mode %v, using prompt file mode", mode)
	}
	prompt, title, err = b.Prompt()
	return prompt, "", title, err
}
