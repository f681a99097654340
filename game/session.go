package game

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/rredkovich/mafiaengine/types"
	"github.com/segmentio/ksuid"
)

// nightActions are the intents cast during one night, reset when a night begins.
type nightActions struct {
	kills    *VoteTally
	victimID string
	// actor id -> target id
	protects map[string]string
	inspects map[string]string
}

func newNightActions() nightActions {
	return nightActions{
		kills:    NewVoteTally(),
		protects: make(map[string]string),
		inspects: make(map[string]string),
	}
}

// Session is one game in one channel. Every exported method is a single state
// transition and holds the session lock for its whole duration; nothing inside
// does I/O, announcements are returned as notifications.
type Session struct {
	mu sync.Mutex

	ID                ksuid.KSUID
	ChannelKey        string
	CreatorID         string
	TargetPlayerCount int
	CreatedAt         time.Time

	phase         Phase
	roster        []*types.Player
	rolesAssigned bool
	round         int
	ballotRound   int
	night         nightActions
	lynchVotes    *VoteTally
	outcome       Outcome

	rules Rules
	dir   PlayerDirectory
	r     *rand.Rand
}

func newSession(channelKey, creatorID string, targetPlayerCount int, rules Rules,
	dir PlayerDirectory, r *rand.Rand) (*Session, error) {
	if err := rules.checkPlayerCount(targetPlayerCount); err != nil {
		return nil, err
	}

	s := &Session{
		ID:                ksuid.New(),
		ChannelKey:        channelKey,
		CreatorID:         creatorID,
		TargetPlayerCount: targetPlayerCount,
		CreatedAt:         time.Now(),
		phase:             Waiting,
		night:             newNightActions(),
		lynchVotes:        NewVoteTally(),
		rules:             rules,
		dir:               dir,
		r:                 r,
	}

	// the creator is the first player
	s.roster = append(s.roster, types.NewPlayer(creatorID, s.displayName(creatorID)))

	return s, nil
}

func (s *Session) displayName(id string) string {
	if s.dir == nil {
		return id
	}
	return s.dir.ResolveDisplayName(id)
}

func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.phase
}

func (s *Session) Outcome() Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.outcome
}

// Players returns a copy of the roster in join order.
func (s *Session) Players() []types.Player {
	s.mu.Lock()
	defer s.mu.Unlock()

	players := make([]types.Player, 0, len(s.roster))
	for _, p := range s.roster {
		players = append(players, *p)
	}
	return players
}

func (s *Session) RolesAssigned() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.rolesAssigned
}

// NightVictim is the resolved night kill target, empty while undecided.
func (s *Session) NightVictim() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.night.victimID
}

func (s *Session) HasMember(playerID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.member(playerID) != nil
}

func (s *Session) member(id string) *types.Player {
	for _, p := range s.roster {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// mustMember is for ids the session itself recorded; a miss is a bug.
func (s *Session) mustMember(id string) *types.Player {
	p := s.member(id)
	if p == nil {
		panic(fmt.Sprintf("game: session %v has no roster entry for %v", s.ID, id))
	}
	return p
}

func (s *Session) living() []*types.Player {
	alive := make([]*types.Player, 0, len(s.roster))
	for _, p := range s.roster {
		if p.Alive {
			alive = append(alive, p)
		}
	}
	return alive
}

func (s *Session) livingWhere(keep func(p *types.Player) bool) []*types.Player {
	var found []*types.Player
	for _, p := range s.living() {
		if keep(p) {
			found = append(found, p)
		}
	}
	return found
}

func (s *Session) toChannel(text string) Notification {
	return Notification{ChannelKey: s.ChannelKey, Text: text}
}

func (s *Session) toPlayer(p *types.Player, text string) Notification {
	return Notification{PlayerID: p.ID, Text: text}
}

// Join adds a player. The join that fills the roster deals the roles and
// starts the first night.
func (s *Session) Join(playerID, displayName string) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase.IsOver() {
		return Result{}, ErrNoActiveSession
	}
	if s.member(playerID) != nil {
		return Result{}, ErrAlreadyJoined
	}
	if s.phase != Waiting || len(s.roster) >= s.TargetPlayerCount {
		return Result{}, ErrRosterFull
	}

	if displayName == "" {
		displayName = s.displayName(playerID)
	}
	p := types.NewPlayer(playerID, displayName)
	s.roster = append(s.roster, p)

	if len(s.roster) < s.TargetPlayerCount {
		return Result{
			Reply: fmt.Sprintf("%v присоединяется. Игроков: %d/%d", p.HTMLName(), len(s.roster), s.TargetPlayerCount),
		}, nil
	}

	res := Result{Reply: fmt.Sprintf("%v присоединяется. Все в сборе, роли розданы!", p.HTMLName())}
	res.Notifications = s.start()
	return res, nil
}

// Leave removes a player who is not the creator while the roster is gathering.
func (s *Session) Leave(playerID string) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase.IsOver() {
		return Result{}, ErrNoActiveSession
	}
	if s.phase != Waiting {
		return Result{}, fmt.Errorf("%w: игра уже началась", ErrWrongPhase)
	}
	if playerID == s.CreatorID {
		return Result{}, fmt.Errorf("%w: создатель не может выйти, только завершить игру", ErrWrongPhase)
	}

	for i, p := range s.roster {
		if p.ID == playerID {
			s.roster = append(s.roster[:i], s.roster[i+1:]...)
			return Result{
				Reply: fmt.Sprintf("%v выходит из игры. Игроков: %d/%d", p.HTMLName(), len(s.roster), s.TargetPlayerCount),
			}, nil
		}
	}
	return Result{}, ErrNotJoined
}

func (s *Session) start() []Notification {
	if err := AssignRoles(s.roster, s.r); err != nil {
		// player count was checked on creation
		panic(fmt.Sprintf("game: session %v: %v", s.ID, err))
	}
	s.rolesAssigned = true

	notes := []Notification{s.toChannel("<b>Игра началась!</b> Роли отправлены в личные сообщения.")}
	for _, member := range s.roster {
		notes = append(notes, s.toPlayer(member, welcomeText(member, s.roster)))
	}

	return append(notes, s.beginNight()...)
}

func (s *Session) beginNight() []Notification {
	s.phase = Night
	s.round++
	s.ballotRound++
	s.night = newNightActions()

	notes := []Notification{s.toChannel(fmt.Sprintf("<b>Наступила ночь %d</b>\n%v", s.round, pick(s.r, nightDescriptions)))}

	targets := s.livingWhere(func(p *types.Player) bool { return !p.IsMafia() })
	for _, mafioso := range s.livingWhere((*types.Player).IsMafia) {
		notes = append(notes, Notification{
			PlayerID: mafioso.ID,
			Text:     "Тебе решать, кто не проснётся этой ночью...",
			Ballot:   &Ballot{ChannelKey: s.ChannelKey, Round: s.ballotRound, Kind: MafiaBallot, Options: ballotOptions(targets)},
		})
	}

	for _, doctor := range s.livingWhere(func(p *types.Player) bool { return p.Role == types.Doctor }) {
		notes = append(notes, Notification{
			PlayerID: doctor.ID,
			Text:     "Кого забинтуем этой ночью?",
			Ballot:   &Ballot{ChannelKey: s.ChannelKey, Round: s.ballotRound, Kind: DoctorBallot, Options: ballotOptions(s.living())},
		})
	}

	for _, detective := range s.livingWhere(func(p *types.Player) bool { return p.Role == types.Detective }) {
		id := detective.ID
		others := s.livingWhere(func(p *types.Player) bool { return p.ID != id })
		notes = append(notes, Notification{
			PlayerID: detective.ID,
			Text:     "Кого проверишь?",
			Ballot:   &Ballot{ChannelKey: s.ChannelKey, Round: s.ballotRound, Kind: DetectiveBallot, Options: ballotOptions(others)},
		})
	}

	return notes
}

// CastNightVote records a mafioso's kill vote.
func (s *Session) CastNightVote(mafiosoID, targetText string) (Result, error) {
	return s.CastNightAction(mafiosoID, KillAction, targetText)
}

// CastNightAction records a role-restricted night intent. Kill votes resolve
// into the night victim as soon as every living mafioso has voted.
func (s *Session) CastNightAction(actorID string, action NightAction, targetText string) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase.IsOver() {
		return Result{}, ErrNoActiveSession
	}
	if s.phase != Night {
		return Result{}, fmt.Errorf("%w: сейчас %v", ErrWrongPhase, s.phase)
	}

	actor := s.member(actorID)
	if actor == nil || !actor.Alive {
		return Result{}, ErrNotEligibleVoter
	}
	wantRole := map[NightAction]types.RoleType{
		KillAction:    types.Mafia,
		ProtectAction: types.Doctor,
		InspectAction: types.Detective,
	}[action]
	if actor.Role != wantRole {
		return Result{}, ErrNotEligibleVoter
	}

	target, err := ResolveTarget(s.nightTargets(actor, action), targetText, s.dir)
	if err != nil {
		return Result{}, err
	}

	switch action {
	case ProtectAction:
		s.night.protects[actor.ID] = target.ID
		return Result{Reply: fmt.Sprintf("Этой ночью ты лечишь %v", target.HTMLName())}, nil
	case InspectAction:
		if target.ID == actor.ID {
			return Result{}, fmt.Errorf("%w: себя проверять незачем", ErrInvalidTarget)
		}
		s.night.inspects[actor.ID] = target.ID
		return Result{Reply: fmt.Sprintf("Этой ночью ты проверяешь %v", target.HTMLName())}, nil
	}

	if target.IsMafia() {
		return Result{}, fmt.Errorf("%w: своих не трогаем", ErrInvalidTarget)
	}
	s.night.kills.Record(actor.ID, target.ID)

	res := Result{Reply: fmt.Sprintf("Твой голос за %v принят", target.HTMLName())}
	mafia := s.livingWhere((*types.Player).IsMafia)
	for _, mate := range mafia {
		if mate.ID != actor.ID {
			res.Notifications = append(res.Notifications,
				s.toPlayer(mate, fmt.Sprintf("%v голосует за %v", actor.HTMLName(), target.HTMLName())))
		}
	}

	for _, m := range mafia {
		if !s.night.kills.Voted(m.ID) {
			return res, nil
		}
	}
	victimID, _ := s.night.kills.Resolve()
	s.night.victimID = victimID
	victim := s.mustMember(victimID)
	for _, m := range mafia {
		res.Notifications = append(res.Notifications,
			s.toPlayer(m, fmt.Sprintf("Мафия выбрала: %v", victim.HTMLName())))
	}

	return res, nil
}

// nightTargets are the players an action may be aimed at. Names are only
// matched among them, so an unreachable player never makes a name ambiguous.
func (s *Session) nightTargets(actor *types.Player, action NightAction) []*types.Player {
	switch action {
	case KillAction:
		return s.livingWhere(func(p *types.Player) bool { return !p.IsMafia() })
	case InspectAction:
		return s.livingWhere(func(p *types.Player) bool { return p.ID != actor.ID })
	}
	return s.living()
}

// CastLynchVote records a living player's public vote.
func (s *Session) CastLynchVote(voterID, targetText string) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase.IsOver() {
		return Result{}, ErrNoActiveSession
	}
	if s.phase != Voting {
		return Result{}, fmt.Errorf("%w: сейчас %v", ErrWrongPhase, s.phase)
	}

	voter := s.member(voterID)
	if voter == nil || !voter.Alive {
		return Result{}, ErrNotEligibleVoter
	}

	others := s.livingWhere(func(p *types.Player) bool { return p.ID != voter.ID })
	target, err := ResolveTarget(others, targetText, s.dir)
	if err != nil {
		return Result{}, err
	}
	if target.ID == voter.ID {
		return Result{}, fmt.Errorf("%w: за себя голосовать нельзя", ErrInvalidTarget)
	}

	s.lynchVotes.Record(voter.ID, target.ID)

	return Result{
		Reply: "Голос принят",
		Notifications: []Notification{
			s.toChannel(fmt.Sprintf("%v голосует против %v", voter.HTMLName(), target.HTMLName())),
		},
	}, nil
}

// Advance moves the game to its next phase. Only moderators may do it.
func (s *Session) Advance(requesterID string, requesterIsModerator bool) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase.IsOver() {
		return Result{}, ErrNoActiveSession
	}
	if !requesterIsModerator {
		return Result{}, ErrNotAuthorized
	}

	next, ok := s.phase.next()
	if !ok {
		return Result{}, fmt.Errorf("%w: игроков %d/%d", ErrWrongPhase, len(s.roster), s.TargetPlayerCount)
	}

	switch s.phase {
	case Night:
		return s.endNight(), nil
	case Day:
		s.phase = next
		return s.beginVoting(), nil
	}
	return s.endVoting(), nil
}

func (s *Session) endNight() Result {
	var notes []Notification

	victimID := s.night.victimID
	saved := false
	if s.rules.ResolveNightActions {
		for doctorID, targetID := range s.night.protects {
			if targetID == victimID && s.mustMember(doctorID).Alive {
				saved = true
			}
		}
		for detectiveID, targetID := range s.night.inspects {
			// a killed detective learns nothing
			if detectiveID == victimID && !saved {
				continue
			}
			detective, target := s.mustMember(detectiveID), s.mustMember(targetID)
			notes = append(notes,
				s.toPlayer(detective, fmt.Sprintf("%v - <b>%v</b>", target.HTMLName(), target.Role)),
				s.toPlayer(target, "Кто-то заинтересовался вашей ролью"))
		}
	}

	s.phase = Day
	notes = append(notes, s.toChannel(fmt.Sprintf("<b>Наступил день</b>\n%v", pick(s.r, dayDescriptions))))

	died := false
	switch {
	case victimID == "":
		notes = append(notes, s.toChannel("Удивительно, но этой ночью никто не пострадал"))
	case saved:
		victim := s.mustMember(victimID)
		notes = append(notes,
			s.toChannel("Удивительно, но все выжили"),
			s.toPlayer(victim, "Доктор приходил к вам"))
	default:
		victim := s.mustMember(victimID)
		victim.Alive = false
		died = true
		notes = append(notes,
			s.toChannel(fmt.Sprintf(pick(s.r, mafiaDeathsDescriptions), victim.HTMLName(), victim.Role)),
			s.toPlayer(victim, "Тебя убили этой ночью 😞"))
	}

	s.night = newNightActions()

	if died {
		if ended, endNotes := s.tryToEnd(); ended {
			return Result{Reply: "Ночь окончена", Notifications: append(notes, endNotes...)}
		}
	}

	return Result{Reply: "Ночь окончена", Notifications: notes}
}

func (s *Session) beginVoting() Result {
	s.lynchVotes.Reset()
	s.ballotRound++

	notes := []Notification{
		s.toChannel(fmt.Sprintf("<b>Голосование</b>\n%v\n\n%v", pick(s.r, lynchDescriptions), listAlive(s.roster, s.r))),
	}
	for _, voter := range s.living() {
		id := voter.ID
		others := s.livingWhere(func(p *types.Player) bool { return p.ID != id })
		notes = append(notes, Notification{
			PlayerID: voter.ID,
			Text:     "Кого желаем вздёрнуть?",
			Ballot:   &Ballot{ChannelKey: s.ChannelKey, Round: s.ballotRound, Kind: LynchBallot, Options: ballotOptions(others)},
		})
	}

	return Result{Reply: "День окончен, голосуем", Notifications: notes}
}

func (s *Session) endVoting() Result {
	var notes []Notification

	targetID, ok := s.lynchVotes.Resolve()
	if ok {
		target := s.mustMember(targetID)
		target.Alive = false
		notes = append(notes,
			s.toChannel(fmt.Sprintf(pick(s.r, lynchResults), target.HTMLName())+
				fmt.Sprintf("\n\nРоль - <b>%v</b>", target.Role)),
			s.toPlayer(target, "Тебя линчевали на дневном собрании 😞"))

		if ended, endNotes := s.tryToEnd(); ended {
			return Result{Reply: "Голосование окончено", Notifications: append(notes, endNotes...)}
		}
	} else {
		notes = append(notes, s.toChannel("Никто не проголосовал, все расходятся по домам"))
	}

	s.lynchVotes.Reset()
	notes = append(notes, s.beginNight()...)

	return Result{Reply: "Голосование окончено", Notifications: notes}
}

// tryToEnd ends the session when a faction has won.
func (s *Session) tryToEnd() (bool, []Notification) {
	outcome := EvaluateOutcome(s.roster)
	if outcome == NoOutcome {
		return false, nil
	}

	s.phase = Ended
	s.outcome = outcome
	duration := time.Since(s.CreatedAt).Round(time.Second)

	return true, []Notification{
		s.toChannel(fmt.Sprintf("%v\nИгра длилась %v", resultsText(outcome, s.roster), duration)),
	}
}

// stop ends the session without a winner.
func (s *Session) stop() Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.phase = Ended
	res := Result{Reply: "Игра остановлена"}
	if s.rolesAssigned {
		text := "Роли были такие:\n"
		for _, member := range s.roster {
			text += fmt.Sprintf("  - %v\n", member.WithRole())
		}
		res.Notifications = append(res.Notifications, s.toChannel(text))
	}
	return res
}

// Status describes the current phase and who is still alive.
func (s *Session) Status() Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase == Waiting {
		text := fmt.Sprintf("Ведётся набор в игру: %d/%d\n", len(s.roster), s.TargetPlayerCount)
		for _, member := range s.roster {
			text += fmt.Sprintf("- %v\n", member.HTMLName())
		}
		return Result{Reply: text}
	}

	text := fmt.Sprintf("Сейчас: <b>%v</b>, раунд %d\n", s.phase, s.round)
	for _, member := range s.living() {
		text += fmt.Sprintf("- %v\n", member.HTMLName())
	}
	return Result{Reply: text}
}
