package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"mines-casino/internal/config"
	"mines-casino/internal/logging"
)

type apiError struct {
	Status int
	Code   string
}

func (e *apiError) Error() string {
	return fmt.Sprintf("%d %s", e.Status, e.Code)
}

type client struct {
	baseURL string
	http    *http.Client
}

func newClient(baseURL string) *client {
	return &client{baseURL: baseURL, http: &http.Client{Timeout: 10 * time.Second}}
}

func (c *client) do(ctx context.Context, method, path string, in, out any) error {
	var body bytes.Buffer
	if in != nil {
		if err := json.NewEncoder(&body).Encode(in); err != nil {
			return err
		}
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		var e struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&e)
		return &apiError{Status: resp.StatusCode, Code: e.Error}
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

type session struct {
	SessionID string `json:"session_id"`
	GridSize  int    `json:"grid_size"`
	IsFree    bool   `json:"is_free"`
}

type reveal struct {
	Outcome         string `json:"outcome"`
	CurrentWinnings int64  `json:"current_winnings"`
	GameOver        bool   `json:"game_over"`
}

type summary struct {
	AccountID string
	Rounds    int
	CashedOut int
	Lost      int
	Winnings  int64
}

// play runs cfg.Rounds sessions, revealing random cells and cashing out after
// cfg.CashOutAt safe reveals. It stops early when the account runs dry.
func play(ctx context.Context, c *client, rnd *rand.Rand, cfg config.BotConfig) (summary, error) {
	accountID := cfg.AccountID
	if accountID == "" {
		var acc struct {
			AccountID string `json:"account_id"`
		}
		if err := c.do(ctx, http.MethodPost, "/api/accounts", nil, &acc); err != nil {
			return summary{}, fmt.Errorf("create account: %w", err)
		}
		accountID = acc.AccountID
		log.Info().Str("account_id", accountID).Msg("bot account created")
	}

	out := summary{AccountID: accountID}
	for out.Rounds < cfg.Rounds {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		var sess session
		err := c.do(ctx, http.MethodPost, "/api/sessions", map[string]any{
			"account_id": accountID,
			"stake":      cfg.Stake,
			"mine_count": cfg.MineCount,
		}, &sess)
		var apiErr *apiError
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusPaymentRequired {
			log.Warn().Str("code", apiErr.Code).Int("rounds", out.Rounds).Msg("bot out of funds")
			return out, nil
		}
		if err != nil {
			return out, fmt.Errorf("start session: %w", err)
		}
		out.Rounds++

		won, lost, err := playSession(ctx, c, rnd, sess, cfg.CashOutAt)
		if err != nil {
			return out, err
		}
		if lost {
			out.Lost++
		} else {
			out.CashedOut++
			out.Winnings += won
		}
		log.Info().
			Str("session_id", sess.SessionID).
			Bool("lost", lost).
			Int64("winnings", won).
			Msg("bot round finished")
	}
	return out, nil
}

func playSession(ctx context.Context, c *client, rnd *rand.Rand, sess session, cashOutAt int) (int64, bool, error) {
	cells := rnd.Perm(sess.GridSize * sess.GridSize)
	safe := 0
	for _, cell := range cells {
		if safe >= cashOutAt {
			break
		}
		var res reveal
		err := c.do(ctx, http.MethodPost, "/api/sessions/"+sess.SessionID+"/reveal", map[string]int{
			"row": cell / sess.GridSize,
			"col": cell % sess.GridSize,
		}, &res)
		if err != nil {
			return 0, false, fmt.Errorf("reveal: %w", err)
		}
		if res.Outcome == "mine" {
			return 0, true, nil
		}
		safe++
		if res.GameOver {
			break
		}
	}

	var cash struct {
		Winnings int64 `json:"winnings"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/sessions/"+sess.SessionID+"/cashout", nil, &cash); err != nil {
		return 0, false, fmt.Errorf("cash out: %w", err)
	}
	return cash.Winnings, false, nil
}

func main() {
	logCfg, err := config.LoadLog()
	if err != nil {
		panic(err)
	}
	logCfg.Service = "mines-bot"
	if err := logging.Init(logCfg); err != nil {
		panic(err)
	}
	defer logging.Close()

	cfg, err := config.LoadBot()
	if err != nil {
		log.Fatal().Err(err).Msg("bot config")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
	res, err := play(ctx, newClient(cfg.ServerURL), rnd, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("bot stopped")
	}
	log.Info().
		Str("account_id", res.AccountID).
		Int("rounds", res.Rounds).
		Int("cashed_out", res.CashedOut).
		Int("lost", res.Lost).
		Int64("winnings", res.Winnings).
		Msg("bot done")
}
