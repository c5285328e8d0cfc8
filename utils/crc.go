package utils

import "hash/crc32"

func GenerateCrc(data []byte) uint32 {
	return crc32.ChecksumIEEE(data)
}

func CheckCrc(crc uint32, data []byte) bool {
	return GenerateCrc(data) == crc
}

// UpdateCrc continues a running IEEE checksum with data.
func UpdateCrc(crc uint32, data []byte) uint32 {
	return crc32.Update(crc, crc32.IEEETable, data)
}
