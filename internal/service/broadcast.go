package service

import (
	"context"
	"fmt"
	"strings"
)

// Broadcast обновляет сообщение мерчанта и будит все устройства с его пассами.
// Токены, на которые шлюз ответил 410, отписываются здесь, а не в push-клиенте.
func (s *Service) Broadcast(ctx context.Context, cmd BroadcastCommand) (BroadcastResult, error) {
	cmd.MerchantID = strings.TrimSpace(cmd.MerchantID)
	cmd.Message = strings.TrimSpace(cmd.Message)
	if cmd.MerchantID == "" {
		return BroadcastResult{}, ErrInvalidRequest
	}
	if err := s.store.UpdateWalletMessage(ctx, cmd.MerchantID, cmd.Message, cmd.ExpiresAt); err != nil {
		return BroadcastResult{}, err
	}

	tokens, err := s.store.PushTokensForMerchant(ctx, cmd.MerchantID, s.opts.PassTypeID)
	if err != nil {
		return BroadcastResult{}, fmt.Errorf("push tokens: %w", err)
	}
	res := BroadcastResult{Devices: len(tokens)}
	log := s.logger.With().Str("merchant_id", cmd.MerchantID).Int("devices", len(tokens)).Logger()
	if len(tokens) == 0 {
		log.Info().Msg("broadcast stored, no registered devices")
		return res, nil
	}
	if s.pusher == nil {
		log.Warn().Msg("broadcast stored, push disabled")
		return res, nil
	}

	batch, err := s.pusher.Push(ctx, tokens)
	res.Results = batch.Results
	res.Sent = batch.Succeeded()
	res.Failed = len(tokens) - res.Sent
	if err != nil {
		log.Error().Err(err).Int("sent", res.Sent).Msg("broadcast push aborted")
		return res, fmt.Errorf("%w: %w", ErrPushFailed, err)
	}

	for _, tok := range batch.UnregisteredTokens() {
		n, err := s.store.DeleteRegistrationsByPushToken(ctx, tok)
		if err != nil {
			log.Error().Err(err).Msg("cleanup of unregistered token failed")
			continue
		}
		res.Unregistered += int(n)
	}
	log.Info().Int("sent", res.Sent).Int("failed", res.Failed).Int("unregistered", res.Unregistered).Msg("broadcast done")
	return res, nil
}
