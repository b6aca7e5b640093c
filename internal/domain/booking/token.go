package booking

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

type TokenKind string

const (
	TokenStart    TokenKind = "flow:start"
	TokenPhone    TokenKind = "flow:phone"
	TokenLocation TokenKind = "loc"
	TokenBarber   TokenKind = "barber"
	TokenDay      TokenKind = "day"
	TokenTime     TokenKind = "time"
	TokenConfirm  TokenKind = "confirm"
	TokenCancel   TokenKind = "cancel"
)

// Token é o dado opaco carregado por cada opção de menu. Menu identifica o
// menu que gerou a opção; tokens de passo só valem enquanto ele for o atual.
type Token struct {
	Kind  TokenKind
	Menu  string
	ID    uint
	Value string
}

func LocationToken(menu string, id uint) Token { return Token{Kind: TokenLocation, Menu: menu, ID: id} }
func BarberToken(menu string, id uint) Token   { return Token{Kind: TokenBarber, Menu: menu, ID: id} }
func DayToken(menu, date string) Token         { return Token{Kind: TokenDay, Menu: menu, Value: date} }
func TimeToken(menu, hm string) Token          { return Token{Kind: TokenTime, Menu: menu, Value: hm} }
func ConfirmToken(menu string) Token           { return Token{Kind: TokenConfirm, Menu: menu} }
func SimpleToken(k TokenKind) Token            { return Token{Kind: k} }

// NewMenuID gera o identificador curto de um menu; cabe com folga nos 64
// bytes de callback_data do Telegram.
func NewMenuID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:menuIDLen]
}

const menuIDLen = 8

func validMenuID(s string) bool {
	if s == "" || len(s) > 32 {
		return false
	}
	for _, r := range s {
		if !(r >= '0' && r <= '9' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z') {
			return false
		}
	}
	return true
}

func (t Token) String() string {
	switch t.Kind {
	case TokenLocation, TokenBarber:
		return fmt.Sprintf("%s:%s:%d", t.Kind, t.Menu, t.ID)
	case TokenDay, TokenTime:
		return fmt.Sprintf("%s:%s:%s", t.Kind, t.Menu, t.Value)
	case TokenConfirm:
		return fmt.Sprintf("%s:%s", t.Kind, t.Menu)
	default:
		return string(t.Kind)
	}
}

// IssuedBy devolve o passo em que o menu com este token foi gerado.
// Tokens sem passo (start, phone, cancel) valem em qualquer estado.
func (t Token) IssuedBy() (Step, bool) {
	switch t.Kind {
	case TokenLocation:
		return StepChoosingLocation, true
	case TokenBarber:
		return StepChoosingBarber, true
	case TokenDay:
		return StepChoosingDay, true
	case TokenTime:
		return StepChoosingTime, true
	case TokenConfirm:
		return StepConfirming, true
	}
	return StepIdle, false
}

// Matches diz se o token veio do menu atual da conversa.
func (t Token) Matches(st State) bool {
	step, bound := t.IssuedBy()
	if !bound {
		return true
	}
	return st.Step == step && st.MenuID != "" && t.Menu == st.MenuID
}

func ParseToken(raw string) (Token, error) {
	raw = strings.TrimSpace(raw)

	switch TokenKind(raw) {
	case TokenStart, TokenPhone, TokenCancel:
		return Token{Kind: TokenKind(raw)}, nil
	}

	kind, rest, ok := strings.Cut(raw, ":")
	if !ok || rest == "" {
		return Token{}, fmt.Errorf("malformed token %q", raw)
	}

	if TokenKind(kind) == TokenConfirm {
		if !validMenuID(rest) {
			return Token{}, fmt.Errorf("malformed menu in token %q", raw)
		}
		return ConfirmToken(rest), nil
	}

	menu, value, ok := strings.Cut(rest, ":")
	if !ok || value == "" || !validMenuID(menu) {
		return Token{}, fmt.Errorf("malformed token %q", raw)
	}

	switch TokenKind(kind) {
	case TokenLocation, TokenBarber:
		id, err := strconv.ParseUint(value, 10, 64)
		if err != nil || id == 0 {
			return Token{}, fmt.Errorf("malformed id in token %q", raw)
		}
		return Token{Kind: TokenKind(kind), Menu: menu, ID: uint(id)}, nil

	case TokenDay:
		if _, err := time.Parse("2006-01-02", value); err != nil {
			return Token{}, fmt.Errorf("malformed date in token %q", raw)
		}
		return DayToken(menu, value), nil

	case TokenTime:
		if _, err := time.Parse("15:04", value); err != nil || len(value) != 5 {
			return Token{}, fmt.Errorf("malformed time in token %q", raw)
		}
		return TimeToken(menu, value), nil
	}

	return Token{}, fmt.Errorf("unknown token %q", raw)
}
