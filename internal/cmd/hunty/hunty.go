package hunty

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/hunty/huntcore/internal/hunt"
	"github.com/hunty/huntcore/internal/hunt/event"
	"github.com/hunty/huntcore/internal/hunt/service"
	entrypoint "github.com/hunty/huntcore/internal/platform/cmd"
	apperrors "github.com/hunty/huntcore/internal/platform/errors"
	"github.com/hunty/huntcore/internal/storage"
	boltstore "github.com/hunty/huntcore/internal/storage/bbolt"
	sqlitestore "github.com/hunty/huntcore/internal/storage/sqlite"
)

// Run opens the configured store and dispatches one subcommand against the
// hunt controller. Results are printed as JSON to out.
func Run(ctx context.Context, cfg Config, args []string, out io.Writer) error {
	if len(args) == 0 {
		return errors.New("usage: hunty [flags] <command> [command flags]")
	}

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	svc := service.NewService(service.Stores{
		Hunts:    store,
		Clues:    store,
		Progress: store,
		Events:   store,
	})

	result, err := dispatch(ctx, svc, args[0], args[1:])
	if err != nil {
		if apperrors.GetCode(err) != apperrors.CodeUnknown {
			return errors.New(apperrors.UserMessage(err, cfg.Locale))
		}
		return err
	}
	return printJSON(out, result)
}

func openStore(cfg Config) (storage.Store, error) {
	switch cfg.Driver {
	case DriverBBolt:
		return boltstore.Open(cfg.Path)
	case DriverSQLite:
		return sqlitestore.Open(cfg.Path)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

func dispatch(ctx context.Context, svc *service.Service, command string, args []string) (any, error) {
	switch command {
	case "create":
		return runCreate(ctx, svc, args)
	case "add-clue":
		return runAddClue(ctx, svc, args)
	case "configure-rewards":
		return runConfigureRewards(ctx, svc, args)
	case "activate":
		return runStatusChange(ctx, svc.ActivateHunt, args)
	case "deactivate":
		return runStatusChange(ctx, svc.DeactivateHunt, args)
	case "cancel":
		return runStatusChange(ctx, svc.CancelHunt, args)
	case "complete":
		return runStatusChange(ctx, svc.CompleteHunt, args)
	case "register":
		return runRegister(ctx, svc, args)
	case "submit":
		return runSubmit(ctx, svc, args)
	case "claim":
		return runClaim(ctx, svc, args)
	case "show":
		return runShow(ctx, svc, args)
	case "clues":
		return runClues(ctx, svc, args)
	case "players":
		return runPlayers(ctx, svc, args)
	case "progress":
		return runProgress(ctx, svc, args)
	case "events":
		return runEvents(ctx, svc, args)
	case "current-id":
		return runCurrentID(ctx, svc)
	default:
		return nil, fmt.Errorf("unknown command %q", command)
	}
}

func runCreate(ctx context.Context, svc *service.Service, args []string) (any, error) {
	fs := flag.NewFlagSet("create", flag.ContinueOnError)
	creator := fs.String("creator", "", "creator address")
	title := fs.String("title", "", "hunt title")
	description := fs.String("description", "", "hunt description")
	end := fs.String("end", "", "end time, RFC 3339; empty means unbounded")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return nil, err
	}

	var endTime time.Time
	if *end != "" {
		parsed, err := time.Parse(time.RFC3339, *end)
		if err != nil {
			return nil, fmt.Errorf("parse -end: %w", err)
		}
		endTime = parsed
	}

	return svc.CreateHunt(ctx, hunt.CreateHuntInput{
		Creator:     *creator,
		Title:       *title,
		Description: *description,
		EndTime:     endTime,
	})
}

func runAddClue(ctx context.Context, svc *service.Service, args []string) (any, error) {
	fs := flag.NewFlagSet("add-clue", flag.ContinueOnError)
	huntID := fs.Uint64("hunt", 0, "hunt ID")
	creator := fs.String("creator", "", "creator address")
	question := fs.String("question", "", "clue question")
	answer := fs.String("answer", "", "expected answer; stored as a SHA-256 fingerprint")
	points := fs.Uint("points", 0, "score awarded on completion")
	required := fs.Bool("required", false, "whether the clue is required to finish")
	hint := fs.String("hint", "", "optional hint")
	lat := fs.Int64("lat", 0, "latitude in microdegrees")
	lng := fs.Int64("lng", 0, "longitude in microdegrees")
	radius := fs.Uint("radius", 0, "geofence radius in meters; 0 means no geofence")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return nil, err
	}

	input := hunt.CreateClueInput{
		Question:   *question,
		AnswerHash: HashAnswer(*answer),
		Points:     uint32(*points),
		IsRequired: *required,
		Hint:       *hint,
	}
	if *radius > 0 {
		input.HasLocation = true
		input.Location = hunt.Location{Latitude: *lat, Longitude: *lng, Radius: uint32(*radius)}
	}
	return svc.AddClue(ctx, *huntID, *creator, input)
}

func runConfigureRewards(ctx context.Context, svc *service.Service, args []string) (any, error) {
	fs := flag.NewFlagSet("configure-rewards", flag.ContinueOnError)
	huntID := fs.Uint64("hunt", 0, "hunt ID")
	creator := fs.String("creator", "", "creator address")
	pool := fs.Int64("pool", 0, "reward pool in stroops")
	nft := fs.Bool("nft", false, "award an NFT to each winner")
	nftContract := fs.String("nft-contract", "", "NFT contract address")
	maxWinners := fs.Uint("max-winners", 0, "number of winner slots")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return nil, err
	}
	return svc.ConfigureRewards(ctx, *huntID, *creator, *pool, *nft, *nftContract, uint32(*maxWinners))
}

func runStatusChange(ctx context.Context, op func(context.Context, uint64, string) (hunt.Hunt, error), args []string) (any, error) {
	fs := flag.NewFlagSet("status", flag.ContinueOnError)
	huntID := fs.Uint64("hunt", 0, "hunt ID")
	creator := fs.String("creator", "", "creator address")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return nil, err
	}
	return op(ctx, *huntID, *creator)
}

func runRegister(ctx context.Context, svc *service.Service, args []string) (any, error) {
	fs := flag.NewFlagSet("register", flag.ContinueOnError)
	huntID := fs.Uint64("hunt", 0, "hunt ID")
	player := fs.String("player", "", "player address")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return nil, err
	}
	return svc.RegisterPlayer(ctx, *huntID, *player)
}

func runSubmit(ctx context.Context, svc *service.Service, args []string) (any, error) {
	fs := flag.NewFlagSet("submit", flag.ContinueOnError)
	huntID := fs.Uint64("hunt", 0, "hunt ID")
	player := fs.String("player", "", "player address")
	clueID := fs.Uint("clue", 0, "clue ID")
	answer := fs.String("answer", "", "answer to submit")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return nil, err
	}
	return svc.SubmitAnswer(ctx, *huntID, *player, uint32(*clueID), HashAnswer(*answer))
}

func runClaim(ctx context.Context, svc *service.Service, args []string) (any, error) {
	fs := flag.NewFlagSet("claim", flag.ContinueOnError)
	huntID := fs.Uint64("hunt", 0, "hunt ID")
	player := fs.String("player", "", "player address")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return nil, err
	}
	return svc.ClaimReward(ctx, *huntID, *player)
}

func runShow(ctx context.Context, svc *service.Service, args []string) (any, error) {
	huntID, err := parseHuntFlag("show", args)
	if err != nil {
		return nil, err
	}
	return svc.GetHunt(ctx, huntID)
}

func runClues(ctx context.Context, svc *service.Service, args []string) (any, error) {
	huntID, err := parseHuntFlag("clues", args)
	if err != nil {
		return nil, err
	}
	return svc.ListClues(ctx, huntID)
}

func runPlayers(ctx context.Context, svc *service.Service, args []string) (any, error) {
	huntID, err := parseHuntFlag("players", args)
	if err != nil {
		return nil, err
	}
	return svc.ListPlayers(ctx, huntID)
}

func runProgress(ctx context.Context, svc *service.Service, args []string) (any, error) {
	fs := flag.NewFlagSet("progress", flag.ContinueOnError)
	huntID := fs.Uint64("hunt", 0, "hunt ID")
	player := fs.String("player", "", "player address; empty lists every player")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return nil, err
	}
	if *player == "" {
		return svc.ListProgress(ctx, *huntID)
	}
	return svc.GetProgress(ctx, *huntID, *player)
}

func runEvents(ctx context.Context, svc *service.Service, args []string) (any, error) {
	fs := flag.NewFlagSet("events", flag.ContinueOnError)
	huntID := fs.Uint64("hunt", 0, "hunt ID")
	domain := fs.String("domain", "", `only events from this domain ("hunt", "clue", "player", "reward")`)
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return nil, err
	}

	events, err := svc.ListEvents(ctx, *huntID)
	if err != nil || *domain == "" {
		return events, err
	}
	filtered := make([]event.Event, 0, len(events))
	for _, evt := range events {
		if evt.Type.Domain() == *domain {
			filtered = append(filtered, evt)
		}
	}
	return filtered, nil
}

func runCurrentID(ctx context.Context, svc *service.Service) (any, error) {
	id, err := svc.CurrentHuntID(ctx)
	if err != nil {
		return nil, err
	}
	return map[string]uint64{"current_hunt_id": id}, nil
}

func parseHuntFlag(name string, args []string) (uint64, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	huntID := fs.Uint64("hunt", 0, "hunt ID")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return 0, err
	}
	return *huntID, nil
}

// HashAnswer fingerprints an answer for storage and comparison. Answers are
// never persisted in clear text.
func HashAnswer(answer string) string {
	sum := sha256.Sum256([]byte(answer))
	return hex.EncodeToString(sum[:])
}

func printJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
