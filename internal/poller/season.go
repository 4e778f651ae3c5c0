package poller

import (
	"context"
	"fmt"
	"log"
	"time"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/EgorLis/Helldiversbot/internal/war"
)

// bootstrap: id сезона -> адреса -> WarInfo, затем открывает сезонный гейт.
// Пока не вышло — повтор с backoff 1s..30s.
func (s *Scheduler) bootstrap(ctx context.Context) error {
	backoff := time.Second
	const maxBackoff = 30 * time.Second

	for {
		err := s.initSeason(ctx)
		if err == nil {
			s.markSeasonReady()
			return nil
		}
		if ctx.Err() != nil {
			return nil
		}
		s.report(fmt.Sprintf("[hd2] season init failed (retry in %s): %v", backoff, err))
		if s.sleep(ctx, backoff) != nil {
			return nil
		}
		backoff = min(backoff*2, maxBackoff)
	}
}

func (s *Scheduler) initSeason(ctx context.Context) error {
	id, err := s.api.CurrentWarID(ctx, s.endpoints)
	if err != nil {
		log.Printf("[hd2] current war id: %v, using %d", err, s.defaultWarID)
		id = s.defaultWarID
	}
	s.cache.SetCurrentWarID(id)
	s.endpoints.SetSeason(id)

	if err := s.refreshWarInfo(ctx); err != nil {
		v, derr := s.dumps.Read(string(war.SchemaWarInfo))
		if derr != nil {
			return err
		}
		if cerr := s.cache.Commit(map[war.Schema]*structpb.Value{war.SchemaWarInfo: v}); cerr != nil {
			return err
		}
		s.warInfoStale.Store(true)
		s.report(fmt.Sprintf("[hd2] WarInfo fetch failed, using last dump: %v", err))
	}
	return nil
}

func (s *Scheduler) refreshWarInfo(ctx context.Context) error {
	v, err := s.urlSource(war.SchemaWarInfo, s.endpoints.WarInfo).fetch(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", war.SchemaWarInfo, err)
	}
	if err := checkShape(war.SchemaWarInfo, v); err != nil {
		return err
	}
	payloads := map[war.Schema]*structpb.Value{war.SchemaWarInfo: v}
	if err := s.cache.Commit(payloads); err != nil {
		return err
	}
	s.persist(payloads)
	s.warInfoStale.Store(false)
	return nil
}

// checkSeason — шаг после 60s тира: новый id -> новые адреса + свежий WarInfo.
func (s *Scheduler) checkSeason(ctx context.Context) error {
	id, err := s.api.CurrentWarID(ctx, s.endpoints)
	if err != nil {
		return fmt.Errorf("current war id: %w", err)
	}
	old, _ := s.cache.CurrentWarID()
	if id != old {
		s.cache.SetCurrentWarID(id)
		s.endpoints.SetSeason(id)
		s.report(fmt.Sprintf("[hd2] war season changed: %d -> %d", old, id))
		return s.refreshWarInfo(ctx)
	}
	if s.warInfoStale.Load() {
		return s.refreshWarInfo(ctx)
	}
	return nil
}
