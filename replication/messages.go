// Package replication is the C10 component: the REQ/REP command channel
// and PUB/SUB broadcast channel between each client and the authoritative
// server (§4.10), built on the wire framing in ipc. It owns the envelope
// sequence counter, gap detection, and full-state resync — the parts of
// the protocol that know about InputMessage/OutputMessage, as opposed to
// ipc's transport-only framing.
package replication

import (
	"github.com/nstehr/vimy/vimy-core/battle"
	"github.com/nstehr/vimy/vimy-core/config"
	"github.com/nstehr/vimy/vimy-core/worldmap"
)

// Wire envelope type tags (§4.10/§6): the string carried in ipc.Envelope.Type.
const (
	TypeInput   = "input"
	TypeAck     = "ack"
	TypePublish = "publish"
)

// InputMessageKind tags the closed set of messages a client sends on the
// command channel (§4.10 "Input:").
type InputMessageKind int

const (
	InLoadDeployment InputMessageKind = iota
	InLoadControl
	InRequireCompleteSync
	InSetBattleState
	InBattleState
	InChangeConfig
)

// LoadControl assigns each side the spawn zones it may deploy into and
// contest (§6 CLI "--side-a-control <zone>… --side-b-control <zone>…").
type LoadControl struct {
	ASpawnZones []worldmap.SpawnZoneName `json:"a_spawn_zones"`
	BSpawnZones []worldmap.SpawnZoneName `json:"b_spawn_zones"`
}

// InputMessage is the one struct carried over the command channel, tagged
// by Kind exactly like every other message type in this codebase (§9
// "dynamic dispatch") — only the field matching Kind is populated.
type InputMessage struct {
	Kind InputMessageKind `json:"kind"`

	Deployment *DeploymentRef              `json:"deployment,omitempty"`
	Control    *LoadControl                `json:"control,omitempty"`
	Copy       *StateCopy                  `json:"copy,omitempty"`
	Battle     *battle.BattleStateMessage  `json:"battle,omitempty"`
	Config     *config.ChangeConfigMessage `json:"config,omitempty"`
}

// DeploymentRef names a deployment file a LoadDeployment input points the
// server at. The deployment package owns actually decoding and loading
// the file's contents; parsing the referenced path/format is outside this
// core's scope (§1) — only the seam is modeled here.
type DeploymentRef struct {
	Path string `json:"path"`
}

func RequireCompleteSyncMessage() InputMessage {
	return InputMessage{Kind: InRequireCompleteSync}
}

func ChangeConfigInput(msg config.ChangeConfigMessage) InputMessage {
	return InputMessage{Kind: InChangeConfig, Config: &msg}
}

func BattleStateInput(msg battle.BattleStateMessage) InputMessage {
	return InputMessage{Kind: InBattleState, Battle: &msg}
}

func SetBattleStateInput(copy StateCopy) InputMessage {
	return InputMessage{Kind: InSetBattleState, Copy: &copy}
}

// OutputMessageKind tags the closed set of messages the server publishes
// (§4.10 "Output:").
type OutputMessageKind int

const (
	OutLoadFromCopy OutputMessageKind = iota
	OutBattleState
	OutClientState
	OutChangeConfig
)

// OutputMessage mirrors InputMessage's shape on the publish side.
type OutputMessage struct {
	Kind OutputMessageKind `json:"kind"`

	Copy   *StateCopy                  `json:"copy,omitempty"`
	Battle *battle.BattleStateMessage  `json:"battle,omitempty"`
	Client *battle.ClientStateMessage  `json:"client,omitempty"`
	Config *config.ChangeConfigMessage `json:"config,omitempty"`
}

// Envelope is the PUB broadcast container (§4.10): a monotonically
// increasing id plus the batch of messages produced since the last
// publish. This is distinct from ipc.Envelope, which frames the bytes on
// the wire — an Envelope here travels as the Data payload of one
// ipc.Envelope tagged TypePublish.
type Envelope struct {
	ID       uint64          `json:"id"`
	Messages []OutputMessage `json:"messages"`
}
