// Package topology parses the optional network topology file format: each
// line names a miner, its hashrate, and a list of peer-name/delay pairs
// describing its outbound links.
package topology

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// PeerSpec is one outbound link: the peer's name and the propagation delay
// to it.
type PeerSpec struct {
	Name  string
	Delay float64
}

// MinerSpec is one line of a topology file.
type MinerSpec struct {
	Name     string
	Hashrate float64
	Peers    []PeerSpec
}

// Spec is a fully parsed topology file, in line order.
type Spec struct {
	Miners []MinerSpec
}

// Parse reads a topology file in the format:
//
//	name hashrate peer1 delay1 peer2 delay2 ...
//
// Blank lines and lines starting with "#" are ignored.
func Parse(r io.Reader) (*Spec, error) {
	seen := make(map[string]bool)
	spec := &Spec{}
	scan := bufio.NewScanner(r)
	for scan.Scan() {
		fields := strings.Fields(scan.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		name := fields[0]
		if seen[name] {
			return nil, fmt.Errorf("topology: duplicate miner name %q", name)
		}
		seen[name] = true
		if len(fields) < 2 {
			return nil, fmt.Errorf("topology: missing hashrate for %q", name)
		}
		hashrate, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, fmt.Errorf("topology: bad hashrate for %q: %w", name, err)
		}
		if hashrate <= 0 {
			return nil, fmt.Errorf("topology: hashrate must be > 0 for %q", name)
		}
		rest := fields[2:]
		if len(rest)%2 != 0 {
			return nil, fmt.Errorf("topology: unpaired peer/delay for %q", name)
		}
		m := MinerSpec{Name: name, Hashrate: hashrate}
		for i := 0; i < len(rest); i += 2 {
			delay, err := strconv.ParseFloat(rest[i+1], 64)
			if err != nil {
				return nil, fmt.Errorf("topology: bad delay %q->%q: %w", name, rest[i], err)
			}
			m.Peers = append(m.Peers, PeerSpec{Name: rest[i], Delay: delay})
		}
		spec.Miners = append(spec.Miners, m)
	}
	if err := scan.Err(); err != nil {
		return nil, err
	}
	if len(spec.Miners) == 0 {
		return nil, fmt.Errorf("topology: no miners")
	}
	for _, m := range spec.Miners {
		for _, p := range m.Peers {
			if !seen[p.Name] {
				return nil, fmt.Errorf("topology: %q references unknown peer %q", m.Name, p.Name)
			}
		}
	}
	return spec, nil
}
