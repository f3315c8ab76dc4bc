package state

// Clone returns a deep copy of the state. The copy shares no slice, map or
// pointer with the receiver.
func (s *GameState) Clone() *GameState {
	if s == nil {
		return nil
	}

	return &GameState{
		Turn: s.Turn,
		Decks: Decks{
			Player: cloneDeck(s.Decks.Player, cloneCard),
			Event: EventDeck{
				Deck: cloneDeck(s.Decks.Event.Deck, cloneEvent),
				Next: s.Decks.Event.Next,
			},
		},
		Hand:                   cloneSlice(s.Hand, cloneCard),
		Phase:                  s.Phase,
		WorldTracks:            cloneSlice(s.WorldTracks, cloneTrack),
		CharacterStats:         cloneSlice(s.CharacterStats, cloneStat),
		Statuses:               cloneSlice(s.Statuses, identity[StatusEffect]),
		TemporaryMarkers:       cloneSlice(s.TemporaryMarkers, cloneMarker),
		Modifiers:              cloneSlice(s.Modifiers, identity[CardModifier]),
		Event:                  cloneEvent(s.Event),
		Scenario:               cloneScenario(s.Scenario),
		Log:                    cloneSlice(s.Log, identity[LogEntry]),
		JournalScript:          cloneJournal(s.JournalScript),
		LoopStage:              s.LoopStage,
		EventResolutionPending: s.EventResolutionPending,
		EventResolutionSummary: clonePtr(s.EventResolutionSummary),
		LastCardPlay:           clonePtr(s.LastCardPlay),
		GameOutcome:            s.GameOutcome,
		Ending:                 clonePtr(s.Ending),
		AutoScrollLog:          s.AutoScrollLog,
		SoundEnabled:           s.SoundEnabled,
	}
}

func identity[T any](v T) T { return v }

// cloneSlice keeps nil slices nil so a clone compares equal to its source.
func cloneSlice[T any](items []T, clone func(T) T) []T {
	if items == nil {
		return nil
	}
	out := make([]T, len(items))
	for i, item := range items {
		out[i] = clone(item)
	}
	return out
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneDeck[T any](d Deck[T], clone func(T) T) Deck[T] {
	return Deck[T]{
		Draw:        d.Draw,
		Discard:     d.Discard,
		DrawPile:    cloneSlice(d.DrawPile, clone),
		DiscardPile: cloneSlice(d.DiscardPile, clone),
	}
}

func cloneCard(c CardDefinition) CardDefinition {
	c.ActionCost = clonePtr(c.ActionCost)
	c.Chance = clonePtr(c.Chance)
	c.SuccessCount = clonePtr(c.SuccessCount)
	c.FailCount = clonePtr(c.FailCount)
	c.Effect = cloneCardEffect(c.Effect)
	c.Effects = cloneChoiceEffect(c.Effects)
	return c
}

func cloneCardEffect(e CardEffect) CardEffect {
	if e.Player == nil {
		return e
	}
	p := *e.Player
	p.RemoveStatuses = cloneSlice(p.RemoveStatuses, identity[string])
	p.Modifier = clonePtr(p.Modifier)
	return CardEffect{Amount: e.Amount, Player: &p}
}

func cloneChoiceEffect(e *EventChoiceEffect) *EventChoiceEffect {
	if e == nil {
		return nil
	}
	c := *e
	c.StatDeltas = cloneSlice(e.StatDeltas, identity[StatDelta])
	return &c
}

func cloneChoice(c EventChoice) EventChoice {
	c.Chance = clonePtr(c.Chance)
	c.Effects = cloneChoiceEffect(c.Effects)
	c.SuccessEffects = cloneChoiceEffect(c.SuccessEffects)
	c.FailEffects = cloneChoiceEffect(c.FailEffects)
	return c
}

func cloneEvent(e EventCard) EventCard {
	e.Choices = cloneSlice(e.Choices, cloneChoice)
	e.ImmediateEffects = cloneChoiceEffect(e.ImmediateEffects)
	return e
}

func cloneTrack(t Track) Track {
	t.CriticalThreshold = clonePtr(t.CriticalThreshold)
	return t
}

func cloneStat(s CharacterStat) CharacterStat {
	s.CriticalThreshold = clonePtr(s.CriticalThreshold)
	return s
}

func cloneMarker(m TemporaryMarker) TemporaryMarker {
	m.Max = clonePtr(m.Max)
	return m
}

func cloneScenario(s Scenario) Scenario {
	if s.Endings == nil {
		return s
	}
	endings := make(map[EndingKey]Ending, len(s.Endings))
	for key, ending := range s.Endings {
		endings[key] = ending
	}
	s.Endings = endings
	return s
}

func cloneJournal(j JournalScript) JournalScript {
	j.Entries = cloneSlice(j.Entries, identity[JournalEntry])
	return j
}
