package v1

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net"

	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"

	"github.com/breeew/folio-api/internal/core"
	"github.com/breeew/folio-api/pkg/ai"
	cerrors "github.com/breeew/folio-api/pkg/errors"
)

const (
	VOICE_EVENT_INTERRUPTED   = "interrupted"
	VOICE_EVENT_TURN_COMPLETE = "turn_complete"
)

// VoiceConn 浏览器一侧的连接，*websocket.Conn 满足该接口
type VoiceConn interface {
	ReadMessage() (messageType int, p []byte, err error)
	WriteMessage(messageType int, data []byte) error
	Close() error
}

type VoiceEvent struct {
	Type string `json:"type"`
}

type VoiceLogic struct {
	ctx  context.Context
	core *core.Core
}

func NewVoiceLogic(ctx context.Context, core *core.Core) *VoiceLogic {
	return &VoiceLogic{
		ctx:  ctx,
		core: core,
	}
}

// Connect 建立模型侧的实时会话，失败时调用方仍可以正常返回 http 错误
func (l *VoiceLogic) Connect() (ai.LiveSession, error) {
	session, err := l.core.Srv().AI().ConnectLive(l.ctx)
	l.core.Metrics().ObserveAI(ai.MODEL_LIVE, err)
	if err != nil {
		return nil, AIError("VoiceLogic.Connect.AI.ConnectLive", err)
	}
	return session, nil
}

// Relay 双向转发音频，任意一侧结束都会关闭会话与连接
func (l *VoiceLogic) Relay(conn VoiceConn, session ai.LiveSession) error {
	g, ctx := errgroup.WithContext(l.ctx)

	g.Go(func() error {
		<-ctx.Done()
		if err := session.Close(); err != nil {
			slog.Debug("failed to close live session", slog.String("error", err.Error()))
		}
		conn.Close()
		return nil
	})

	// 上行：客户端 16kHz PCM16 -> 模型
	g.Go(func() error {
		for {
			mt, data, err := conn.ReadMessage()
			if err != nil {
				return err
			}
			if mt != websocket.BinaryMessage || len(data) == 0 {
				continue
			}
			if err = session.SendAudio(data); err != nil {
				return err
			}
		}
	})

	// 下行：模型 24kHz PCM16 与事件 -> 客户端
	g.Go(func() error {
		for {
			msg, err := session.Receive()
			if err != nil {
				return err
			}
			for _, chunk := range msg.Audio {
				if err = conn.WriteMessage(websocket.BinaryMessage, chunk); err != nil {
					return err
				}
			}
			if msg.Interrupted {
				if err = writeVoiceEvent(conn, VOICE_EVENT_INTERRUPTED); err != nil {
					return err
				}
			}
			if msg.TurnComplete {
				if err = writeVoiceEvent(conn, VOICE_EVENT_TURN_COMPLETE); err != nil {
					return err
				}
			}
		}
	})

	err := g.Wait()
	if isRelayClosed(err) {
		return nil
	}
	return cerrors.Trace("VoiceLogic.Relay", err)
}

func writeVoiceEvent(conn VoiceConn, event string) error {
	raw, err := json.Marshal(VoiceEvent{Type: event})
	if err != nil {
		return err
	}
	return conn.WriteMessage(websocket.TextMessage, raw)
}

func isRelayClosed(err error) bool {
	return err == nil ||
		errors.Is(err, io.EOF) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, net.ErrClosed) ||
		websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseNoStatusReceived)
}
