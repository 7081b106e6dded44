// Package bot turns inbound chat messages into reports.
package bot

import (
	"strings"

	"github.com/Vodeneev/oddsbot/internal/pkg/enums"
)

type Kind int

const (
	KindHelp Kind = iota
	KindReport
	KindTest
)

// Command is a parsed inbound text.
type Command struct {
	Kind    Kind
	Sport   enums.Sport
	Keyword string
}

const (
	queryCommand      = "/查詢"
	queryCommandASCII = "/query"
	testCommand       = "/test"
)

// HelpText answers anything that is not a known command.
const HelpText = "請輸入以下指令查詢推薦：\n" +
	"/查詢 [隊伍] 或 /NBA查詢\n" +
	"/MLB查詢 /NPB查詢 /KBO查詢\n" +
	"/足球查詢\n" +
	"/test 測試推播"

// sportCommands maps lower-cased command words to sports.
var sportCommands = map[string]enums.Sport{
	"/nba查詢": enums.NBA,
	"/mlb查詢": enums.MLB,
	"/npb查詢": enums.NPB,
	"/kbo查詢": enums.KBO,
	"/足球查詢":   enums.Soccer,
	"/nba":    enums.NBA,
	"/mlb":    enums.MLB,
	"/npb":    enums.NPB,
	"/kbo":    enums.KBO,
	"/soccer": enums.Soccer,
}

// ParseCommand recognises:
//
//	/查詢 <kw>, /查詢<kw>, /query <kw>   NBA report filtered by kw
//	/NBA查詢 … /足球查詢, /nba … /soccer  per-sport report (optional kw)
//	/test                                  broadcast to recipients
//
// Anything else is KindHelp.
func ParseCommand(text string) Command {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "/") {
		return Command{Kind: KindHelp}
	}

	raw, rest, _ := strings.Cut(text, " ")
	raw = stripBotName(raw)
	word := strings.ToLower(raw)
	rest = strings.TrimSpace(rest)

	switch {
	case word == testCommand:
		return Command{Kind: KindTest}
	case word == queryCommandASCII:
		return Command{Kind: KindReport, Sport: enums.NBA, Keyword: rest}
	case strings.HasPrefix(word, queryCommand):
		// "/查詢Lakers" is accepted like "/查詢 Lakers".
		kw := strings.TrimSpace(strings.TrimPrefix(raw, queryCommand) + " " + rest)
		return Command{Kind: KindReport, Sport: enums.NBA, Keyword: kw}
	}

	if sport, ok := sportCommands[word]; ok {
		return Command{Kind: KindReport, Sport: sport, Keyword: rest}
	}
	return Command{Kind: KindHelp}
}

// stripBotName drops the "@botname" suffix Telegram adds in groups.
func stripBotName(word string) string {
	if i := strings.IndexByte(word, '@'); i > 0 {
		return word[:i]
	}
	return word
}
