package hqmap

import (
	"travian-hq-server/internal/domain"
)

// Generate строит полную карту штаба: внешние стены, двенадцать комнат
// сеткой 4x3 с дверями, коридорные полосы между рядами, объекты и точки
// появления персон. Планировка детерминирована, случайности нет.
func Generate() *Maze {
	m := newMaze(Width, Height)

	// Имена блоков из встроенных таблиц.
	for id, name := range SectorIDs {
		m.sectorNames[id] = name
	}
	for id, name := range ArenaIDs {
		m.arenaNames[id] = name
	}
	for id, name := range GameObjectIDs {
		m.objectNames[id] = name
	}
	for id, name := range SpawnIDs {
		m.spawnNames[id] = name
	}

	// 1. Внешние стены по периметру карты.
	for x := 0; x < Width; x++ {
		m.collision[0][x] = true
		m.collision[Height-1][x] = true
	}
	for y := 0; y < Height; y++ {
		m.collision[y][0] = true
		m.collision[y][Width-1] = true
	}

	// 2. Стены комнат и двери.
	for _, room := range Rooms {
		for x := room.ColStart; x <= room.ColEnd; x++ {
			m.collision[room.RowStart][x] = true
			m.collision[room.RowEnd][x] = true
		}
		for y := room.RowStart; y <= room.RowEnd; y++ {
			m.collision[y][room.ColStart] = true
			m.collision[y][room.ColEnd] = true
		}

		// Дверь: две клетки в центре верхней стены плюс одна в левой,
		// чтобы комната была достижима с обеих сторон.
		doorCol := (room.ColStart + room.ColEnd) / 2
		m.collision[room.RowStart][doorCol] = false
		m.collision[room.RowStart][doorCol+1] = false
		m.collision[room.RowStart+1][room.ColStart] = false
	}

	// 3. Интерьеры: сектор и арена на каждой клетке внутри стен.
	for _, room := range Rooms {
		for y := room.RowStart + 1; y < room.RowEnd; y++ {
			for x := room.ColStart + 1; x < room.ColEnd; x++ {
				m.sector[y][x] = room.Sector
				m.arena[y][x] = room.Arena
			}
		}

		// 4. Объекты и точка появления по относительным координатам.
		for _, obj := range room.Objects {
			y := room.RowStart + obj.Row
			x := room.ColStart + obj.Col
			if y >= 0 && y < Height && x >= 0 && x < Width {
				m.object[y][x] = obj.ID
			}
		}
		if room.Spawn != nil && room.Spawn.ID != "" {
			y := room.RowStart + room.Spawn.Row
			x := room.ColStart + room.Spawn.Col
			if y >= 0 && y < Height && x >= 0 && x < Width {
				m.spawn[y][x] = room.Spawn.ID
			}
		}
	}

	m.reindex()
	return m
}

// SpawnCoordinates возвращает точки появления персон без построения
// полной карты: персона -> тайл. Используется генератором базового рана.
func SpawnCoordinates() map[string]domain.Position {
	coords := make(map[string]domain.Position)
	for _, room := range Rooms {
		if room.Spawn == nil || room.Spawn.ID == "" {
			continue
		}
		persona := SpawnPersona[room.Spawn.ID]
		if persona == "" {
			continue
		}
		coords[persona] = domain.Position{
			X: room.ColStart + room.Spawn.Col,
			Y: room.RowStart + room.Spawn.Row,
		}
	}
	return coords
}
