package battle

// InterfaceSoundKind names a UI-facing cue played on one side's client when
// a gameplay "cannot" condition surfaces (§7): an order downgrade, an empty
// weapon, a lost target. No audio asset is played here — only the
// identifier crosses the wire, per the Non-goals on audio playback.
type InterfaceSoundKind int

const (
	SoundBip1 InterfaceSoundKind = iota
	SoundBip2
	SoundEmptyMagazine
)

// ClientStateMessageKind tags the closed set of client-only notifications
// the server can emit alongside a BattleStateMessage batch (§4.10,
// "ClientState(...)").
type ClientStateMessageKind int

const (
	MsgPlayInterfaceSound ClientStateMessageKind = iota
)

// ClientStateMessage is a side-directed notification that does not mutate
// authoritative state — it exists purely to be broadcast to the owning
// side's client.
type ClientStateMessage struct {
	Kind  ClientStateMessageKind
	Side  Side
	Sound InterfaceSoundKind
}

func PlayInterfaceSoundMessage(side Side, sound InterfaceSoundKind) ClientStateMessage {
	return ClientStateMessage{Kind: MsgPlayInterfaceSound, Side: side, Sound: sound}
}
