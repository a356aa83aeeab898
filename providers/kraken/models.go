package kraken

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"
)

// ID accepts both the string and the numeric form Kraken uses for ids.
type ID string

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var value string
		if err := json.Unmarshal(data, &value); err != nil {
			return err
		}
		*id = ID(value)
		return nil
	}
	var number json.Number
	if err := json.Unmarshal(data, &number); err != nil {
		return err
	}
	*id = ID(number.String())
	return nil
}

func (id ID) String() string {
	return string(id)
}

func (id ID) Int64() (int64, error) {
	return strconv.ParseInt(string(id), 10, 64)
}

type User struct {
	ID          ID        `json:"_id"`
	Name        string    `json:"name"`
	DisplayName string    `json:"display_name"`
	Type        string    `json:"type"`
	Bio         string    `json:"bio"`
	Logo        string    `json:"logo"`
	Email       string    `json:"email,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type userList struct {
	Total int    `json:"_total"`
	Users []User `json:"users"`
}

type Channel struct {
	ID                 ID     `json:"_id"`
	Name               string `json:"name"`
	DisplayName        string `json:"display_name"`
	Status             string `json:"status"`
	Game               string `json:"game"`
	BroadcasterLang    string `json:"broadcaster_language"`
	Language           string `json:"language"`
	Mature             bool   `json:"mature"`
	Partner            bool   `json:"partner"`
	Logo               string `json:"logo"`
	URL                string `json:"url"`
	Followers          int    `json:"followers"`
	Views              int    `json:"views"`
	StreamKey          string `json:"stream_key,omitempty"`
	BroadcasterType    string `json:"broadcaster_type"`
	ChannelFeedEnabled *bool  `json:"channel_feed_enabled,omitempty"`
}

type Follow struct {
	CreatedAt     time.Time `json:"created_at"`
	Notifications bool      `json:"notifications"`
	User          User      `json:"user"`
}

type Followers struct {
	Total   int      `json:"_total"`
	Cursor  string   `json:"_cursor"`
	Follows []Follow `json:"follows"`
}

type Stream struct {
	ID          ID        `json:"_id"`
	Game        string    `json:"game"`
	Viewers     int       `json:"viewers"`
	VideoHeight int       `json:"video_height"`
	AverageFPS  float64   `json:"average_fps"`
	Delay       int       `json:"delay"`
	CreatedAt   time.Time `json:"created_at"`
	IsPlaylist  bool      `json:"is_playlist"`
	StreamType  string    `json:"stream_type"`
	Channel     Channel   `json:"channel"`
}

type Game struct {
	ID          ID     `json:"_id"`
	Name        string `json:"name"`
	GiantbombID int    `json:"giantbomb_id"`
	Popularity  int    `json:"popularity"`
}
