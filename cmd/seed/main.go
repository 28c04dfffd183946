package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"telegram-language-bot/internal/config"
	"telegram-language-bot/internal/domain/model"
	pg "telegram-language-bot/internal/infra/db/postgres"
	"telegram-language-bot/internal/infra/logging"
	"telegram-language-bot/internal/usecase"
)

type seedQuestion struct {
	Text        string
	Options     [4]string
	Correct     model.OptionLabel
	Explanation string
}

type seedSection struct {
	Name        string
	Description string
	Premium     bool
	Subsections []string
	Lessons     []model.NewContentParams
}

var sections = []seedSection{
	{
		Name:        "Hangul Basics",
		Description: "Reading and writing the Korean alphabet",
		Subsections: []string{"Vowels", "Consonants"},
		Lessons: []model.NewContentParams{
			{Title: "The ten basic vowels", ContentType: model.FileTypeText, ContentText: "ㅏ ㅑ ㅓ ㅕ ㅗ ㅛ ㅜ ㅠ ㅡ ㅣ"},
			{Title: "The fourteen basic consonants", ContentType: model.FileTypeText, ContentText: "ㄱ ㄴ ㄷ ㄹ ㅁ ㅂ ㅅ ㅇ ㅈ ㅊ ㅋ ㅌ ㅍ ㅎ"},
		},
	},
	{
		Name:        "Everyday Phrases",
		Description: "Greetings and polite expressions",
		Subsections: []string{"Greetings"},
		Lessons: []model.NewContentParams{
			{Title: "Hello and goodbye", ContentType: model.FileTypeText, ContentText: "안녕하세요 / 안녕히 가세요"},
		},
	},
	{
		Name:        "TOPIK I Grammar",
		Description: "Core patterns for the TOPIK I exam",
		Premium:     true,
		Subsections: []string{"Particles"},
	},
}

var quizQuestions = []seedQuestion{
	{Text: "Which letter is the vowel 'a'?", Options: [4]string{"ㅏ", "ㅓ", "ㅗ", "ㅜ"}, Correct: model.OptionA},
	{Text: "How do you say 'thank you'?", Options: [4]string{"미안해요", "감사합니다", "안녕하세요", "괜찮아요"}, Correct: model.OptionB, Explanation: "감사합니다 is the formal thank you."},
	{Text: "Which consonant sounds like 'm'?", Options: [4]string{"ㄴ", "ㄹ", "ㅁ", "ㅂ"}, Correct: model.OptionC},
}

var premiumItems = []model.NewPremiumContentParams{
	{Track: model.TrackTopik1, Title: "TOPIK I vocabulary list", FileType: model.FileTypeText, ContentText: "800 core words", OrderIndex: 1},
	{Track: model.TrackTopik1, Title: "TOPIK I mock listening test", FileType: model.FileTypeAudio, FileID: "placeholder-audio", OrderIndex: 2},
	{Track: model.TrackTopik2, Title: "TOPIK II essay templates", FileType: model.FileTypeDocument, FileID: "placeholder-doc", OrderIndex: 1},
}

func main() {
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	language := flag.String("language", "korean", "language tag for seeded sections and quizzes")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, false)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	logger := logging.New(cfg.Log, cfg.Runtime.Dev)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pg.NewPgxPool(ctx, cfg.Database.URL, 4)
	if err != nil {
		logger.Fatal().Err(err).Msg("postgres")
	}
	defer pool.Close()

	if err := pg.Migrate(ctx, pool); err != nil {
		logger.Fatal().Err(err).Msg("schema")
	}

	catalogUC := usecase.NewCatalogUseCase(pg.NewSectionRepo(pool), pg.NewSubsectionRepo(pool), pg.NewContentRepo(pool), logger)
	quizUC := usecase.NewQuizUseCase(pg.NewQuizRepo(pool), pg.NewAttemptRepo(pool), pg.NewUserRepo(pool), pg.NewTxManager(pool), logger)
	premiumUC := usecase.NewPremiumContentUseCase(pg.NewPremiumContentRepo(pool), logger)

	// If a catalog already exists, do nothing
	existing, err := catalogUC.Sections(ctx, model.SectionFilter{Language: *language})
	if err != nil {
		logger.Fatal().Err(err).Msg("list sections")
	}
	if len(existing) > 0 {
		fmt.Printf("%d %s sections already present. No changes.\n", len(existing), *language)
		return
	}

	for _, s := range sections {
		sectionID, err := catalogUC.CreateSection(ctx, s.Name, s.Description, *language, s.Premium, nil)
		if err != nil {
			logger.Fatal().Err(err).Str("section", s.Name).Msg("create section")
		}
		var firstSub int64
		for _, name := range s.Subsections {
			subID, err := catalogUC.CreateSubsection(ctx, sectionID, name, "", s.Premium)
			if err != nil {
				logger.Fatal().Err(err).Str("subsection", name).Msg("create subsection")
			}
			if firstSub == 0 {
				firstSub = subID
			}
		}
		for _, lesson := range s.Lessons {
			lesson.SectionID = sectionID
			lesson.SubsectionID = firstSub
			lesson.IsPremium = s.Premium
			if _, err := catalogUC.AddContent(ctx, lesson); err != nil {
				logger.Fatal().Err(err).Str("content", lesson.Title).Msg("add content")
			}
		}
		fmt.Printf("seeded section: %s (id=%d, subsections=%d, lessons=%d)\n", s.Name, sectionID, len(s.Subsections), len(s.Lessons))
	}

	quizID, err := quizUC.CreateQuiz(ctx, model.NewQuizParams{
		Title:       "Starter check",
		Description: "A quick review of the basics",
		Language:    *language,
		Category:    model.CategoryGeneral,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("create quiz")
	}
	for _, q := range quizQuestions {
		if _, err := quizUC.AddQuestion(ctx, quizID, q.Text, q.Options, q.Correct, q.Explanation); err != nil {
			logger.Fatal().Err(err).Str("question", q.Text).Msg("add question")
		}
	}
	fmt.Printf("seeded quiz: id=%d questions=%d\n", quizID, len(quizQuestions))

	for _, p := range premiumItems {
		if _, err := premiumUC.Add(ctx, p); err != nil {
			logger.Fatal().Err(err).Str("premium_content", p.Title).Msg("add premium content")
		}
	}
	fmt.Printf("seeded premium content: %d items\n", len(premiumItems))

	fmt.Println("Seeding complete.")
}
