package gemini

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/breeew/folio-api/pkg/ai"
)

type liveSession struct {
	session *genai.Session
}

func (s *Driver) ConnectLive(ctx context.Context) (ai.LiveSession, error) {
	session, err := s.client.Live.Connect(ctx, ai.MODEL_LIVE, &genai.LiveConnectConfig{
		ResponseModalities: []genai.Modality{genai.ModalityAudio},
		SpeechConfig: &genai.SpeechConfig{
			VoiceConfig: &genai.VoiceConfig{
				PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{
					VoiceName: ai.LIVE_VOICE_NAME,
				},
			},
		},
		SystemInstruction: genai.NewContentFromText(ai.LIVE_SYSTEM_INSTRUCTION, genai.RoleUser),
	})
	if err != nil {
		return nil, fmt.Errorf("live connect error: %w", err)
	}
	return &liveSession{session: session}, nil
}

func (s *liveSession) SendAudio(pcm []byte) error {
	return s.session.SendRealtimeInput(genai.LiveRealtimeInput{
		Audio: &genai.Blob{
			Data:     pcm,
			MIMEType: ai.LIVE_INPUT_MIME_TYPE,
		},
	})
}

func (s *liveSession) Receive() (ai.LiveMessage, error) {
	msg, err := s.session.Receive()
	if err != nil {
		return ai.LiveMessage{}, err
	}
	return liveMessage(msg), nil
}

func liveMessage(msg *genai.LiveServerMessage) ai.LiveMessage {
	var res ai.LiveMessage
	if msg == nil || msg.ServerContent == nil {
		return res
	}
	content := msg.ServerContent
	res.Interrupted = content.Interrupted
	res.TurnComplete = content.TurnComplete
	if content.ModelTurn != nil {
		for _, part := range content.ModelTurn.Parts {
			if part != nil && part.InlineData != nil && len(part.InlineData.Data) > 0 {
				res.Audio = append(res.Audio, part.InlineData.Data)
			}
		}
	}
	return res
}

func (s *liveSession) Close() error {
	return s.session.Close()
}
