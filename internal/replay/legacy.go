package replay

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"

	"github.com/vovakirdan/tui-shooter/internal/codec"
	"github.com/vovakirdan/tui-shooter/internal/core"
)

// legacyKey obfuscates v1.3 replay files.
const legacyKey = "B';hGk9NenDlAb()]hv4<E1PnZ[[Smo=|PG*&R,/`Nqp_,bd%/yHg=AACMR%rdm!R~oegY5(z}R)6#3%pi!8v9{#WLl0WGkjYkP}^JUZe(tE}?e|-QuASKs##'YxSNc]>4s2ZUzo6|FlKU7y51e;IF|C2QKK%eJYAwK{z>}J&&.f'1U/k5KP3R~EbP`i!F}i/yeN`f]~YXF)6{>jU'K#{ySl&VJlQa5-m@\"1.:[Wxc&{^F?]E[8+wumL{:!-xrw0ic|vrm'UxmL^)3ZCQc9n=;6Z1f{/vJ^o*NJ1hB>MP7HUa,Recz>^JGT<Wy(k'Q}26Sz1_?x_hL^2~0jUN!Y'\"gX2C>%?8NP!1p$$PhrcrWPne+<{Bgx<S\"q\"EVX}4679X%jJE8qf$p7Ggv\"e%/,._3srqO{Y>oI;|r4K~X;$g63=0BmSDglsO(oJiQ3TDLdlv/Rwd^1=z%TC:b6e*eK;@7I?Vc|>9A_6<v\"J>(vG?Fr~ryyg&{;X>U^qb~Z.a^G*cCOJQUf{_*h)CJ=kcd#Q9VS)$3c'{`soJx/XV4Z6s0r4mMR~b2KN(k_?Ctx-VZ!N]Rx!2vde0@+=fbEGJ8$o`DpR3bewn.+_/ZZ5SRo\"~*A`rk0{oR+9/|~(_mX0O%1`*2:9m37Lkof$+(E.q*w%@r7|tA]nRtx<,&nSP|-/sJC#wT.A!J9uIPpy5nHZR8%uo9Lzt5QUN\\JyE1Z3^\\7(+$$1_oQSZd/AsK!FvfiCQ5q|c6FgiH73.L?Ml/F^5]+L%4A;w`/JGy%W-/%LcY8y4e}f|3=K[=\\OOhE-Y7E=4+tr+\\y~b\nRQQ6NQ$-FAG\\=2b|t4wBQs_@uCb(;{c?[&pq+=f-QG1&!tG1P$Eh*Bd9w|X1`>\\2jBoe1'63!~K3IwOJF.O[c~7.myzSc!Tx7R=,$qYJ=}@Or2P#c?{fPo*&?:!jfl10rRM4zW6O%0(@?arQ?XZUQ4A$Q5hL|fh.L}xhdJ07VDv2FQ=hi|ng9Ug%7+\"!)"

// legacyFrameSize is four little-endian int64 values and one key byte.
const legacyFrameSize = 4*8 + 1

// decodeLegacy parses the v1.3 format: an obfuscated zlib stream holding a
// version line, a header line "players secret boss hard fast what seed" and
// then fixed-size binary frames. A trailing partial frame is ignored.
func decodeLegacy(data []byte) (*Replay, error) {
	plain, err := codec.Decompress(codec.Crypt(data, []byte(legacyKey)))
	if err != nil {
		return nil, err
	}
	version, rest, ok := bytes.Cut(plain, []byte{'\n'})
	if !ok || string(version) != LegacyVersion {
		return nil, fmt.Errorf("%w: not a replay file", ErrCorrupt)
	}
	header, body, _ := bytes.Cut(rest, []byte{'\n'})
	c, err := parseLegacyHeader(string(header))
	if err != nil {
		return nil, err
	}

	r := &Replay{Version: LegacyVersion, Conditions: c}
	for len(body) >= legacyFrameSize {
		r.Frames = append(r.Frames, core.InputFrame{
			Velocity: core.V(
				core.FromInternal(int64(binary.LittleEndian.Uint64(body[0:]))),
				core.FromInternal(int64(binary.LittleEndian.Uint64(body[8:]))),
			),
			Target: core.V(
				core.FromInternal(int64(binary.LittleEndian.Uint64(body[16:]))),
				core.FromInternal(int64(binary.LittleEndian.Uint64(body[24:]))),
			),
			Keys: core.Key(body[32]),
		})
		body = body[legacyFrameSize:]
	}
	if n := len(r.Frames) % c.Players; n != 0 {
		r.Frames = r.Frames[:len(r.Frames)-n]
	}
	return r, nil
}

func parseLegacyHeader(line string) (Conditions, error) {
	fields := strings.Fields(line)
	if len(fields) != 7 {
		return Conditions{}, fmt.Errorf("%w: legacy header has %d fields", ErrCorrupt, len(fields))
	}
	nums := make([]uint64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseUint(f, 10, 32)
		if err != nil {
			return Conditions{}, fmt.Errorf("%w: legacy header: %w", ErrCorrupt, err)
		}
		nums[i] = v
	}

	c := Conditions{
		Compatibility:     CompatLegacy,
		Players:           int(nums[0]),
		CanFaceSecretBoss: nums[1] != 0,
		Seed:              uint32(nums[6]),
	}
	// Later flags win, matching the order the header was written in.
	for i, m := range []GameMode{ModeBoss, ModeHard, ModeFast, ModeWhat} {
		if nums[2+i] != 0 {
			c.Mode = m
		}
	}
	return c.Normalize(), nil
}
