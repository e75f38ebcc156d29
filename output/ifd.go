package output

import (
	"encoding/binary"
	"fmt"
	"io"
	"sort"
)

// IFDBuilder 两阶段 IFD 构建器
// 1. Add* 方法登记标签条目（统一的数据存储格式，自动判断内联）
// 2. Layout 仅根据条目大小计算所有数据块偏移和目录偏移（不写任何字节）
// 3. Write 按最终布局一次性顺序写出：数据块在前，目录在后，无需回填
type IFDBuilder struct {
	entries []*tagEntry

	laidOut bool
	base    uint32 // 第一个数据块的起始偏移
	dirOff  uint32
	endOff  uint32 // 目录结束后的偏移
}

// tagEntry IFD 标签条目
type tagEntry struct {
	tag   uint16
	typ   uint16
	count uint32
	data  []uint32 // 统一用 uint32 数组存储(RATIONAL = 2个uint32)

	offset uint32 // 外部数据块偏移，Layout 阶段填写
}

const ifdEntryLen = 12

// NewIFDBuilder 创建新的构建器
func NewIFDBuilder() *IFDBuilder {
	return &IFDBuilder{}
}

// byteSizeForType 返回每个数据类型的字节大小
func byteSizeForType(typ uint16) int {
	switch typ {
	case TypeByte, TypeASCII, TypeUndefined, TypeSByte:
		return 1
	case TypeShort, TypeSShort:
		return 2
	case TypeRational, TypeSRational:
		return 8
	default:
		return 4
	}
}

// payloadLen 条目编码后的负载字节数
func (e *tagEntry) payloadLen() int {
	return int(e.count) * byteSizeForType(e.typ)
}

// putData 将 uint32 数组按数据类型编码到字节缓冲区
func (e *tagEntry) putData(p []byte) {
	for _, d := range e.data {
		switch e.typ {
		case TypeByte, TypeASCII, TypeUndefined, TypeSByte:
			p[0] = byte(d)
			p = p[1:]
		case TypeShort, TypeSShort:
			binary.LittleEndian.PutUint16(p, uint16(d))
			p = p[2:]
		default:
			binary.LittleEndian.PutUint32(p, d)
			p = p[4:]
		}
	}
}

func (w *IFDBuilder) add(e *tagEntry) {
	w.entries = append(w.entries, e)
}

// AddShort 添加 SHORT 类型标签
func (w *IFDBuilder) AddShort(tag uint16, value uint16) {
	w.add(&tagEntry{tag: tag, typ: TypeShort, count: 1, data: []uint32{uint32(value)}})
}

// AddShortArray 添加 SHORT 数组
func (w *IFDBuilder) AddShortArray(tag uint16, values []uint16) {
	data := make([]uint32, len(values))
	for i, v := range values {
		data[i] = uint32(v)
	}
	w.add(&tagEntry{tag: tag, typ: TypeShort, count: uint32(len(values)), data: data})
}

// AddLong 添加 LONG 类型标签
func (w *IFDBuilder) AddLong(tag uint16, value uint32) {
	w.add(&tagEntry{tag: tag, typ: TypeLong, count: 1, data: []uint32{value}})
}

// AddByteArray 添加 BYTE 数组
func (w *IFDBuilder) AddByteArray(tag uint16, values []byte) {
	data := make([]uint32, len(values))
	for i, v := range values {
		data[i] = uint32(v)
	}
	w.add(&tagEntry{tag: tag, typ: TypeByte, count: uint32(len(values)), data: data})
}

// AddASCII 添加 ASCII 字符串（自动追加 NUL 终止符）
func (w *IFDBuilder) AddASCII(tag uint16, str string) {
	data := make([]uint32, len(str)+1)
	for i := 0; i < len(str); i++ {
		data[i] = uint32(str[i])
	}
	w.add(&tagEntry{tag: tag, typ: TypeASCII, count: uint32(len(data)), data: data})
}

// AddRational 添加 RATIONAL(2个 uint32: 分子/分母)
func (w *IFDBuilder) AddRational(tag uint16, numerator, denominator uint32) {
	w.add(&tagEntry{tag: tag, typ: TypeRational, count: 1, data: []uint32{numerator, denominator}})
}

// AddRationalArray 添加 RATIONAL 数组
func (w *IFDBuilder) AddRationalArray(tag uint16, values [][2]uint32) {
	data := make([]uint32, len(values)*2)
	for i, v := range values {
		data[i*2] = v[0]
		data[i*2+1] = v[1]
	}
	w.add(&tagEntry{tag: tag, typ: TypeRational, count: uint32(len(values)), data: data})
}

// ReserveLong 登记一个值待定的 LONG 标签
// 值必须在 Write 之前通过 SetLong 填入（内联值不影响布局）
func (w *IFDBuilder) ReserveLong(tag uint16) {
	w.add(&tagEntry{tag: tag, typ: TypeLong, count: 1, data: []uint32{0}})
}

// SetLong 填入预留标签的值
// Layout 会重排条目切片，因此按标签号定位而不是按索引
func (w *IFDBuilder) SetLong(tag uint16, value uint32) {
	for _, e := range w.entries {
		if e.tag == tag {
			e.data[0] = value
			return
		}
	}
}

// Layout 阶段一：按 tag 升序排序，为所有超过 4 字节的负载分配 2 字节对齐的
// 数据块偏移（从 base 开始），返回目录偏移和目录结束后的偏移。
// 此后不能再添加条目。
func (w *IFDBuilder) Layout(base uint32) (dirOffset, end uint32) {
	sort.SliceStable(w.entries, func(i, j int) bool {
		return w.entries[i].tag < w.entries[j].tag
	})

	pos := base
	for _, e := range w.entries {
		n := e.payloadLen()
		if n <= 4 {
			continue
		}
		if pos%2 != 0 {
			pos++
		}
		e.offset = pos
		pos += uint32(n)
	}

	if pos%2 != 0 {
		pos++
	}
	w.laidOut = true
	w.base = base
	w.dirOff = pos
	w.endOff = pos + uint32(2+len(w.entries)*ifdEntryLen+4)
	return w.dirOff, w.endOff
}

// Write 阶段二：顺序写出所有数据块和目录，布局与 Layout 的计算逐字节一致
func (w *IFDBuilder) Write(out io.Writer) error {
	if !w.laidOut {
		return fmt.Errorf("IFDBuilder: Layout 必须先于 Write 调用")
	}

	// 数据块
	pos := w.base
	for _, e := range w.entries {
		n := e.payloadLen()
		if n <= 4 {
			continue
		}
		if pos%2 != 0 {
			if _, err := out.Write([]byte{0}); err != nil {
				return err
			}
			pos++
		}
		buf := make([]byte, n)
		e.putData(buf)
		if _, err := out.Write(buf); err != nil {
			return err
		}
		pos += uint32(n)
	}
	if pos%2 != 0 {
		if _, err := out.Write([]byte{0}); err != nil {
			return err
		}
	}

	// 目录：条目数 + 12 字节条目 + 终止符 0（单目录，无链接）
	dir := make([]byte, 2+len(w.entries)*ifdEntryLen+4)
	binary.LittleEndian.PutUint16(dir, uint16(len(w.entries)))
	p := dir[2:]
	for _, e := range w.entries {
		binary.LittleEndian.PutUint16(p[0:2], e.tag)
		binary.LittleEndian.PutUint16(p[2:4], e.typ)
		binary.LittleEndian.PutUint32(p[4:8], e.count)
		if e.payloadLen() <= 4 {
			e.putData(p[8:12])
		} else {
			binary.LittleEndian.PutUint32(p[8:12], e.offset)
		}
		p = p[ifdEntryLen:]
	}
	// 末尾 4 字节已为 0
	_, err := out.Write(dir)
	return err
}
