package storage

import (
	"errors"
	"fmt"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/noderunner/internal/games/noderunner/core"
)

// AppName is the gdata application directory holding save slots.
const AppName = "noderunner"

const savesObject = "saves"

// objectStore is the part of gdata.Manager used for save slots.
type objectStore interface {
	ObjectPropExists(objectKey, propKey string) bool
	LoadObjectProp(objectKey, propKey string) ([]byte, error)
	SaveObjectProp(objectKey, propKey string, data []byte) error
	DeleteObjectProp(objectKey, propKey string) error
}

// Saves stores YAML-encoded save slots. Slot 0 is the autosave.
type Saves struct {
	objects objectStore
}

// SlotInfo summarizes a filled slot for listings.
type SlotInfo struct {
	Slot        int
	Data        core.SaveData
	HasSnapshot bool
}

// OpenSaves opens the per-user save directory for appName.
func OpenSaves(appName string) (*Saves, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open save data: %w", err)
	}
	return &Saves{objects: m}, nil
}

func slotKey(slot int) string {
	if slot == core.AutosaveSlot {
		return "autosave"
	}
	return fmt.Sprintf("slot-%d", slot)
}

func checkSlot(slot int) error {
	if !core.ValidSlot(slot) {
		return fmt.Errorf("storage: invalid save slot %d", slot)
	}
	return nil
}

// Save writes data to slot, replacing what was there.
func (s *Saves) Save(slot int, data core.SaveData) error {
	if err := checkSlot(slot); err != nil {
		return err
	}
	raw, err := yaml.Marshal(data)
	if err != nil {
		return fmt.Errorf("storage: cannot encode slot %d: %w", slot, err)
	}
	if err := s.objects.SaveObjectProp(savesObject, slotKey(slot), raw); err != nil {
		return fmt.Errorf("storage: cannot write slot %d: %w", slot, err)
	}
	return nil
}

// Load reads slot. An empty slot returns core.ErrNoSave.
func (s *Saves) Load(slot int) (core.SaveData, error) {
	if err := checkSlot(slot); err != nil {
		return core.SaveData{}, err
	}
	key := slotKey(slot)
	if !s.objects.ObjectPropExists(savesObject, key) {
		return core.SaveData{}, core.ErrNoSave
	}
	raw, err := s.objects.LoadObjectProp(savesObject, key)
	if err != nil {
		return core.SaveData{}, fmt.Errorf("storage: cannot read slot %d: %w", slot, err)
	}
	if len(raw) == 0 {
		return core.SaveData{}, core.ErrNoSave
	}
	var data core.SaveData
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return core.SaveData{}, fmt.Errorf("storage: cannot decode slot %d: %w", slot, err)
	}
	return data, nil
}

// Delete empties slot. Deleting an empty slot is not an error.
func (s *Saves) Delete(slot int) error {
	if err := checkSlot(slot); err != nil {
		return err
	}
	key := slotKey(slot)
	if !s.objects.ObjectPropExists(savesObject, key) {
		return nil
	}
	if err := s.objects.DeleteObjectProp(savesObject, key); err != nil {
		return fmt.Errorf("storage: cannot delete slot %d: %w", slot, err)
	}
	return nil
}

// List returns the filled slots in order, autosave first. Unreadable slots
// are reported through the joined error and skipped.
func (s *Saves) List() ([]SlotInfo, error) {
	var infos []SlotInfo
	var errs []error
	for slot := core.AutosaveSlot; slot <= core.LastSlot; slot++ {
		data, err := s.Load(slot)
		if errors.Is(err, core.ErrNoSave) {
			continue
		}
		if err != nil {
			errs = append(errs, err)
			continue
		}
		infos = append(infos, SlotInfo{Slot: slot, Data: data, HasSnapshot: data.Snapshot != nil})
	}
	return infos, errors.Join(errs...)
}
