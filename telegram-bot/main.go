package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"

	"fake-news-detector/cache"
	"fake-news-detector/config"
	"fake-news-detector/database"
	"fake-news-detector/logger"
	"fake-news-detector/models"
	"fake-news-detector/services"
)

const analysisTimeout = 3 * time.Minute

var (
	bot     *tgbotapi.BotAPI
	store   *services.SessionStore
	fetcher *services.ContentFetcher

	// Source shown above the result of a forwarded message (chatID → label)
	sourcesMu sync.Mutex
	sources   = map[int64]string{}
)

func main() {
	// In Docker env vars are injected via env_file and godotenv is a no-op.
	// Locally: try the root project .env first, then a local one.
	if os.Getenv("TELEGRAM_TOKEN") == "" {
		if err := godotenv.Load("../.env"); err != nil {
			_ = godotenv.Load()
		}
	}
	logger.Setup()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[bot] config: %v", err)
	}
	if cfg.TelegramToken == "" {
		log.Fatal("[bot] TELEGRAM_TOKEN is not set")
	}

	ctx := context.Background()
	cache.InitRedis(ctx, cfg.RedisURL)
	if err := database.InitDB(cfg.DbURL); err != nil {
		log.Printf("[bot] ⚠ %v, running without verdict statistics", err)
	}

	classifier := services.NewClassifierFromConfig(cfg)
	store = services.NewSessionStore(
		services.NewSessionFactory(classifier, cfg.DefaultModel, services.RecordVerdict),
		cfg.SessionIdleTTL,
	)
	if cfg.SessionIdleTTL > 0 {
		go store.RunJanitor(ctx, time.Minute)
	}
	fetcher = services.NewContentFetcher(cfg.ClassifierTimeout)

	bot, err = tgbotapi.NewBotAPI(cfg.TelegramToken)
	if err != nil {
		log.Fatalf("[bot] init failed: %v", err)
	}

	log.Printf("[bot] Running as @%s | default model: %s", bot.Self.UserName, cfg.DefaultModel)

	if cfg.WebhookURL != "" {
		runWebhook(cfg.WebhookURL, cfg.WebhookPort)
	} else {
		runPolling()
	}
}

// ── Polling mode (dev / no public URL) ───────────────────────────

func runPolling() {
	// Remove any previously registered webhook
	if _, err := bot.Request(tgbotapi.DeleteWebhookConfig{DropPendingUpdates: false}); err != nil {
		log.Printf("[bot] DeleteWebhook: %v", err)
	}

	log.Println("[bot] Mode: POLLING")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	dispatch(bot.GetUpdatesChan(u))
}

// ── Webhook mode (production) ─────────────────────────────────────

func runWebhook(baseURL, port string) {
	// Path contains the bot token and acts as the secret
	path := "/" + bot.Token
	fullURL := strings.TrimRight(baseURL, "/") + path

	wh, err := tgbotapi.NewWebhook(fullURL)
	if err != nil {
		log.Fatalf("[bot] NewWebhook: %v", err)
	}
	if _, err := bot.Request(wh); err != nil {
		log.Fatalf("[bot] setting webhook failed: %v", err)
	}

	info, err := bot.GetWebhookInfo()
	if err != nil {
		log.Fatalf("[bot] GetWebhookInfo: %v", err)
	}
	if info.LastErrorDate != 0 {
		log.Printf("[bot] ⚠ last webhook error: %s", info.LastErrorMessage)
	}

	log.Printf("[bot] Mode: WEBHOOK on :%s", port)

	updates := bot.ListenForWebhook(path)
	go func() {
		if err := http.ListenAndServe(":"+port, nil); err != nil {
			log.Fatalf("[bot] HTTP server failed: %v", err)
		}
	}()
	dispatch(updates)
}

func dispatch(updates tgbotapi.UpdatesChannel) {
	for update := range updates {
		if update.Message != nil {
			go handleMessage(update.Message)
		} else if update.CallbackQuery != nil {
			go handleCallback(update.CallbackQuery)
		}
	}
}

func sessionFor(chatID int64) *services.SessionController {
	return store.GetOrCreate(strconv.FormatInt(chatID, 10))
}

// ── Message handler ──────────────────────────────────────────────

func handleMessage(msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	if msg.ForwardFromChat != nil || msg.ForwardFrom != nil || msg.ForwardSenderName != "" {
		handleForwarded(msg)
		return
	}

	if msg.IsCommand() {
		handleCommand(msg)
		return
	}

	text := strings.TrimSpace(msg.Text)
	if text == "" {
		return
	}
	setSource(chatID, "")
	if isURL(text) {
		startAnalysis(chatID, "", text)
	} else {
		startAnalysis(chatID, text, "")
	}
}

func handleCommand(msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	arg := strings.TrimSpace(msg.CommandArguments())

	switch msg.Command() {
	case "start":
		send(chatID, startText())
	case "help":
		send(chatID, helpText())
	case "models":
		send(chatID, FormatModels())
	case "model":
		ctrl := sessionFor(chatID)
		if arg == "" {
			current := ctrl.State().SelectedModel
			sendWithKeyboard(chatID, fmt.Sprintf("🤖 Current model: <b>%s</b>\nPick another one:", services.DisplayName(current)), ModelKeyboard(current))
			return
		}
		id, err := models.ParseModelID(arg)
		if err == nil {
			err = ctrl.SelectModel(id)
		}
		if err != nil {
			send(chatID, "❌ Unknown model. Use one of: <code>bert</code>, <code>roberta</code>, <code>lstm</code>.")
			return
		}
		send(chatID, fmt.Sprintf("✅ Model set to <b>%s</b>.", services.DisplayName(id)))
	case "example":
		ex, ok := services.FindExample(arg)
		if !ok {
			send(chatID, "Usage: <code>/example real</code> or <code>/example fake</code>")
			return
		}
		setSource(chatID, escHTML(ex.Label)+" example")
		startAnalysis(chatID, ex.Text, "")
	default:
		send(chatID, helpText())
	}
}

// ── Forwarded message handler ─────────────────────────────────────

func handleForwarded(msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	sourceName := ""
	sourceLink := ""
	switch {
	case msg.ForwardFromChat != nil:
		chat := msg.ForwardFromChat
		sourceName = chat.Title
		if chat.UserName != "" {
			sourceLink = "https://t.me/" + chat.UserName
		}
	case msg.ForwardFrom != nil:
		u := msg.ForwardFrom
		if u.UserName != "" {
			sourceName = "@" + u.UserName
			sourceLink = "https://t.me/" + u.UserName
		} else {
			sourceName = strings.TrimSpace(u.FirstName + " " + u.LastName)
		}
	default:
		sourceName = msg.ForwardSenderName
	}

	text := strings.TrimSpace(msg.Text)
	if text == "" {
		text = strings.TrimSpace(msg.Caption)
	}

	sourceLabel := ""
	if sourceName != "" {
		if sourceLink != "" {
			sourceLabel = fmt.Sprintf("<a href=\"%s\">%s</a>", sourceLink, escHTML(sourceName))
		} else {
			sourceLabel = escHTML(sourceName)
		}
	}
	setSource(chatID, sourceLabel)

	// A bare link is classified by its article; any other post by its own text.
	if u := linkIn(msg, text); u != "" && (isURL(text) || len([]rune(text)) < 200) {
		startAnalysis(chatID, "", u)
		return
	}
	startAnalysis(chatID, text, "")
}

func linkIn(msg *tgbotapi.Message, text string) string {
	for _, e := range append(msg.Entities, msg.CaptionEntities...) {
		if e.Type != "url" && e.Type != "text_link" {
			continue
		}
		if e.URL != "" {
			return e.URL
		}
		runes := []rune(text)
		if e.Offset+e.Length <= len(runes) {
			if u := string(runes[e.Offset : e.Offset+e.Length]); isURL(u) {
				return u
			}
		}
	}
	if isURL(text) {
		return text
	}
	return ""
}

// ── Analysis ─────────────────────────────────────────────────────

// startAnalysis classifies text, or the article behind url when url is set.
func startAnalysis(chatID int64, text, url string) {
	ctrl := sessionFor(chatID)
	state := ctrl.State()
	if state.Phase == models.PhaseSubmitting {
		send(chatID, "⏳ Still analyzing your previous message, please wait.")
		return
	}
	if url == "" && strings.TrimSpace(text) == "" {
		send(chatID, "🙏 Please send the news text or a link to the article.")
		return
	}

	initText := fmt.Sprintf("⏳ <b>Analyzing with %s...</b>", services.DisplayName(state.SelectedModel))
	if url != "" {
		initText += "\n\n<code>Loading page...</code>"
	}
	initMsg := sendAndGet(chatID, initText)
	if initMsg == nil {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), analysisTimeout)
		defer cancel()

		if url != "" {
			article, err := fetcher.FetchURL(ctx, url)
			if err != nil {
				log.Printf("[bot] fetch %s: %v", url, err)
				edit(chatID, initMsg.MessageID, "❌ <b>Could not load the article:</b>\n<code>"+escHTML(err.Error())+"</code>")
				return
			}
			text = article
		}
		ctrl.SetInputText(text)
		runAnalysis(ctx, chatID, initMsg.MessageID, ctrl)
	}()
}

func runAnalysis(ctx context.Context, chatID int64, msgID int, ctrl *services.SessionController) {
	err := ctrl.Submit(ctx)
	state := ctrl.State()

	switch {
	case errors.Is(err, services.ErrSubmitInFlight):
		edit(chatID, msgID, "⏳ Still analyzing your previous message, please wait.")
	case errors.Is(err, services.ErrBlankInput):
		edit(chatID, msgID, "🙏 Please send the news text or a link to the article.")
	case err != nil:
		editWithKeyboard(chatID, msgID, FormatFailure(state), ResultKeyboard(""))
	default:
		editWithKeyboard(chatID, msgID, FormatResult(services.Present(*state.Result), getSource(chatID)), ResultKeyboard(state.SelectedModel))
	}
}

// ── Callback handler ─────────────────────────────────────────────

func handleCallback(cb *tgbotapi.CallbackQuery) {
	if cb.Message == nil || cb.Data == "" {
		return
	}
	chatID := cb.Message.Chat.ID
	msgID := cb.Message.MessageID
	ctrl := sessionFor(chatID)

	action, arg, _ := strings.Cut(cb.Data, ":")
	switch action {
	case "select":
		id := models.ModelID(arg)
		if err := ctrl.SelectModel(id); err != nil {
			answer(cb.ID, "❌ Unknown model")
			return
		}
		answer(cb.ID, "✅ "+services.DisplayName(id))
		editWithKeyboard(chatID, msgID, fmt.Sprintf("🤖 Current model: <b>%s</b>\nPick another one:", services.DisplayName(id)), ModelKeyboard(id))

	case "model", "rescan":
		if action == "model" {
			if err := ctrl.SelectModel(models.ModelID(arg)); err != nil {
				answer(cb.ID, "❌ Unknown model")
				return
			}
		}
		state := ctrl.State()
		if state.Phase == models.PhaseSubmitting {
			answer(cb.ID, "⏳ Still analyzing")
			return
		}
		if strings.TrimSpace(state.InputText) == "" {
			answer(cb.ID, "❌ Nothing to re-check")
			return
		}
		answer(cb.ID, "🔄 Re-running the analysis...")
		edit(chatID, msgID, fmt.Sprintf("⏳ <b>Analyzing with %s... (again)</b>", services.DisplayName(state.SelectedModel)))

		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), analysisTimeout)
			defer cancel()
			runAnalysis(ctx, chatID, msgID, ctrl)
		}()
	}
}

// ── Telegram helpers ─────────────────────────────────────────────

func send(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = "HTML"
	msg.DisableWebPagePreview = true
	if _, err := bot.Send(msg); err != nil {
		log.Printf("[bot] send error: %v", err)
	}
}

func sendWithKeyboard(chatID int64, text string, kb tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = "HTML"
	msg.ReplyMarkup = kb
	if _, err := bot.Send(msg); err != nil {
		log.Printf("[bot] send error: %v", err)
	}
}

func sendAndGet(chatID int64, text string) *tgbotapi.Message {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = "HTML"
	msg.DisableWebPagePreview = true
	sent, err := bot.Send(msg)
	if err != nil {
		log.Printf("[bot] send error: %v", err)
		return nil
	}
	return &sent
}

func edit(chatID int64, msgID int, text string) {
	cfg := tgbotapi.NewEditMessageText(chatID, msgID, text)
	cfg.ParseMode = "HTML"
	cfg.DisableWebPagePreview = true
	if _, err := bot.Send(cfg); err != nil {
		log.Printf("[bot] edit error: %v", err)
	}
}

func editWithKeyboard(chatID int64, msgID int, text string, kb tgbotapi.InlineKeyboardMarkup) {
	cfg := tgbotapi.NewEditMessageText(chatID, msgID, text)
	cfg.ParseMode = "HTML"
	cfg.DisableWebPagePreview = true
	cfg.ReplyMarkup = &kb
	if _, err := bot.Send(cfg); err != nil {
		log.Printf("[bot] edit error: %v", err)
	}
}

func answer(callbackID, text string) {
	if _, err := bot.Request(tgbotapi.NewCallback(callbackID, text)); err != nil {
		log.Printf("[bot] callback error: %v", err)
	}
}

func setSource(chatID int64, label string) {
	sourcesMu.Lock()
	defer sourcesMu.Unlock()
	if label == "" {
		delete(sources, chatID)
		return
	}
	sources[chatID] = label
}

func getSource(chatID int64) string {
	sourcesMu.Lock()
	defer sourcesMu.Unlock()
	return sources[chatID]
}

// ── Misc ─────────────────────────────────────────────────────────

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

func startText() string {
	return `🔍 <b>Fake News Detector</b>

I classify news text as <b>FAKE</b> or <b>REAL</b> using a choice of models and show why.

<b>How to use:</b>
• Send the <b>text</b> of a news item
• Send a <b>URL</b> and I will read the article
• <b>Forward</b> a post from a channel

<b>Commands:</b>
/model — choose BERT, RoBERTa or LSTM
/models — compare the models
/example real | fake — try a sample
/help — help`
}

func helpText() string {
	return `📖 <b>Help</b>

<b>Send text or a link:</b>
<code>https://example.com/article</code>

<b>The result includes:</b>
• Verdict and confidence
• Fake / real probabilities
• Feature checks (quotes, attribution, dates, length)
• Suspicious language indicators
• Words the model paid most attention to

Use the buttons under a result to re-check it or run it on another model.

<b>Commands:</b>
/model &lt;bert|roberta|lstm&gt; — pick a model
/models — accuracy and speed comparison
/example real | fake — run a bundled example
/start — main menu`
}
